package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/fs"
	"go.trai.ch/redo/internal/adapters/logger"
	"go.trai.ch/redo/internal/core/ports"
)

const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ScratchNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			scratch, err := graft.Dep[*fs.ScratchAllocator](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, scratch), nil
		},
	})
}

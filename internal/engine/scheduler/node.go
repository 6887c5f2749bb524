package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.VerifierNodeID,
			fs.RuleFinderNodeID,
			fs.HasherNodeID,
			shell.NodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Scheduler, error) {
	resolver, err := graft.Dep[ports.TargetResolver](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	rules, err := graft.Dep[ports.RuleFinder](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewScheduler(resolver, verifier, rules, executor, store, hasher, tel, log), nil
}

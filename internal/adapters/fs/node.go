package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/core/ports"
)

const (
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	VerifierNodeID   graft.ID = "adapter.fs.verifier"
	ResolverNodeID   graft.ID = "adapter.fs.resolver"
	RuleFinderNodeID graft.ID = "adapter.fs.rule_finder"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	SweeperNodeID    graft.ID = "adapter.fs.sweeper"
	ScratchNodeID    graft.ID = "adapter.fs.scratch"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.TargetResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TargetResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.RuleFinder]{
		ID:        RuleFinderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{VerifierNodeID},
		Run: func(ctx context.Context) (ports.RuleFinder, error) {
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return NewRuleFinder(verifier), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Sweeper]{
		ID:        SweeperNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Sweeper, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewSweeper(walker), nil
		},
	})

	graft.Register(graft.Node[*ScratchAllocator]{
		ID:        ScratchNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*ScratchAllocator, error) {
			return NewScratchAllocator(), nil
		},
	})
}

package ports

import (
	"context"

	"go.trai.ch/redo/internal/core/domain"
)

// Executor runs a rule script for a target and promotes its output.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Perform runs rule to build target. On success the target path holds the
	// script's output; on failure the target is left untouched.
	Perform(ctx context.Context, inv domain.Invocation, target domain.Target, rule *domain.Rule) error
}

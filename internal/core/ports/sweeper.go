package ports

import "context"

// SweepOptions selects what a sweep removes.
type SweepOptions struct {
	// Records also removes build record files.
	Records bool
}

// Sweeper removes files redo leaves behind.
//
//go:generate go run go.uber.org/mock/mockgen -source=sweeper.go -destination=mocks/mock_sweeper.go -package=mocks
type Sweeper interface {
	// Sweep removes matching files below each root and returns the removed paths.
	Sweep(ctx context.Context, roots []string, opts SweepOptions) ([]string, error)
}

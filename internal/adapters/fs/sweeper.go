package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Sweeper = (*Sweeper)(nil)

// sweepConcurrency bounds parallel file removals.
const sweepConcurrency = 8

// Sweeper removes scratch files orphaned by killed builds and, optionally,
// build records and lock files.
type Sweeper struct {
	walker *Walker
}

// NewSweeper creates a new Sweeper.
func NewSweeper(walker *Walker) *Sweeper {
	return &Sweeper{walker: walker}
}

// Patterns returns the doublestar patterns a sweep with opts removes,
// relative to a sweep root.
func Patterns(opts ports.SweepOptions) []string {
	patterns := []string{"**/" + domain.ScratchPrefix + "*"}
	if opts.Records {
		patterns = append(patterns,
			"**/"+domain.RecordPrefix+"*",
			"**/"+domain.LockFileName,
		)
	}
	return patterns
}

// Sweep removes every file below roots matching the patterns for opts and
// returns the removed paths in sorted order.
func (s *Sweeper) Sweep(ctx context.Context, roots []string, opts ports.SweepOptions) ([]string, error) {
	patterns := Patterns(opts)

	var matches []string
	for _, root := range roots {
		for path := range s.walker.WalkFiles(root, nil) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			if matchAny(patterns, filepath.ToSlash(rel)) {
				matches = append(matches, path)
			}
		}
	}

	var (
		mu      sync.Mutex
		removed = make([]string, 0, len(matches))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, path := range matches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := os.Remove(path); err != nil {
				if errors.Is(err, iofs.ErrNotExist) {
					return nil
				}
				return zerr.With(zerr.Wrap(errors.Join(domain.ErrCleanFailed, err), "remove failed"), "path", path)
			}
			mu.Lock()
			removed = append(removed, path)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	slices.Sort(removed)
	return removed, err
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

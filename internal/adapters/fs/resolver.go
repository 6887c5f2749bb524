package fs

import (
	"errors"
	"path/filepath"
	"unicode/utf8"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TargetResolver = (*Resolver)(nil)

// Resolver turns command line target names into absolute targets.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveTarget resolves name against workDir. Symlinks in the target's
// directory are resolved so that rule search and relativization operate on
// canonical paths; the target itself need not exist.
func (r *Resolver) ResolveTarget(workDir, name string) (domain.Target, error) {
	if name == "" {
		return domain.Target{}, zerr.With(zerr.Wrap(domain.ErrInvalidTarget, "empty target name"), "work_dir", workDir)
	}
	if !utf8.ValidString(name) {
		return domain.Target{}, zerr.With(zerr.Wrap(domain.ErrPathEncoding, "invalid target name"), "target", name)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	path = filepath.Clean(path)

	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return domain.Target{}, zerr.With(zerr.Wrap(domain.ErrInvalidTarget, "target has no file name"), "target", name)
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		wrapped := zerr.Wrap(errors.Join(domain.ErrCanonicalizeFailed, err), "failed to resolve target directory")
		return domain.Target{}, zerr.With(wrapped, "target", name)
	}
	if !utf8.ValidString(dir) {
		return domain.Target{}, zerr.With(zerr.Wrap(domain.ErrPathEncoding, "invalid target directory"), "dir", dir)
	}

	return domain.NewTarget(name, filepath.Join(dir, base)), nil
}

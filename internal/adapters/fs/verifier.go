package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/redo/internal/core/ports"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Exists reports whether path exists, following symlinks. A dangling symlink
// does not exist.
func (v *Verifier) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, statError(path, err)
	}
	return true, nil
}

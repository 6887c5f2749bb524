package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultScratchAttempts bounds how many random names are tried before giving up.
const DefaultScratchAttempts = 16

// ScratchAllocator creates uniquely named scratch files next to a target.
type ScratchAllocator struct {
	newName  func() string
	attempts int
}

// NewScratchAllocator creates an allocator that names files with random UUIDs.
func NewScratchAllocator() *ScratchAllocator {
	return NewScratchAllocatorWithNames(uuid.NewString, DefaultScratchAttempts)
}

// NewScratchAllocatorWithNames creates an allocator drawing names from newName.
func NewScratchAllocatorWithNames(newName func() string, attempts int) *ScratchAllocator {
	if attempts < 1 {
		attempts = 1
	}
	return &ScratchAllocator{newName: newName, attempts: attempts}
}

// Allocate creates one empty scratch file per suffix in dir, all sharing a
// freshly picked name. The directory lock is held only while the name is
// picked and the files are created.
func (a *ScratchAllocator) Allocate(dir string, suffixes ...string) (files []*Scratch, err error) {
	lock, err := LockDir(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			DiscardAll(files)
			files, err = nil, unlockErr
		}
	}()

	for range a.attempts {
		base := filepath.Join(dir, domain.ScratchPrefix+a.newName())
		files, err = createAll(base, suffixes)
		if err == nil {
			return files, nil
		}
		if !errors.Is(err, iofs.ErrExist) {
			return nil, err
		}
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrScratchExhausted, "all scratch names taken"), "dir", dir)
}

func createAll(base string, suffixes []string) ([]*Scratch, error) {
	files := make([]*Scratch, 0, len(suffixes))
	for _, suffix := range suffixes {
		path := base + suffix
		//nolint:gosec // Path is derived from the target directory
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm)
		if err != nil {
			DiscardAll(files)
			if errors.Is(err, iofs.ErrExist) {
				return nil, err
			}
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrScratchCreateFailed, err), "create failed"), "path", path)
		}
		files = append(files, &Scratch{path: path, file: f})
	}
	return files, nil
}

// DiscardAll removes every scratch file, ignoring errors.
func DiscardAll(files []*Scratch) {
	for _, s := range files {
		_ = s.Discard()
	}
}

// Scratch is a temporary file owned by a single build.
type Scratch struct {
	path     string
	file     *os.File
	promoted bool
}

// Path returns the absolute path of the scratch file.
func (s *Scratch) Path() string {
	return s.path
}

// File returns the open handle, or nil once closed.
func (s *Scratch) File() *os.File {
	return s.file
}

// Size returns the current size of the file at the scratch path. A script
// may have removed or replaced it, so a missing file has size zero.
func (s *Scratch) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, nil
		}
		return 0, statError(s.path, err)
	}
	return info.Size(), nil
}

// Close closes the handle. It is safe to call more than once.
func (s *Scratch) Close() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close scratch file"), "path", s.path)
	}
	return nil
}

// Discard closes and removes the file unless it was promoted.
func (s *Scratch) Discard() error {
	closeErr := s.Close()
	if s.promoted {
		return closeErr
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return errors.Join(closeErr, zerr.With(zerr.Wrap(err, "failed to remove scratch file"), "path", s.path))
	}
	return closeErr
}

// Promote atomically renames the scratch file onto dest, replacing any
// existing file there.
func (s *Scratch) Promote(dest string) error {
	if err := s.Close(); err != nil {
		return err
	}
	if _, err := os.Lstat(s.path); errors.Is(err, iofs.ErrNotExist) {
		// The script removed its output file; recreate it empty.
		//nolint:gosec // Path is derived from the target directory
		if err := os.WriteFile(s.path, nil, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrPromoteFailed, err), "recreate failed"), "path", s.path)
		}
	}
	if err := os.Rename(s.path, dest); err != nil {
		wrapped := zerr.With(zerr.Wrap(errors.Join(domain.ErrPromoteFailed, err), "rename failed"), "from", s.path)
		return zerr.With(wrapped, "to", dest)
	}
	s.promoted = true
	return nil
}

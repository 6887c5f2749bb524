package fs

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/zerr"
)

// DirLock is an exclusive advisory lock on a directory's lock file.
type DirLock struct {
	file *os.File
}

// LockDir blocks until it holds the lock file in dir.
func LockDir(dir string) (*DirLock, error) {
	path := filepath.Join(dir, domain.LockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.FilePerm) //nolint:gosec // Path is derived from the target directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "failed to open lock file"), "path", path)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "flock failed"), "path", path)
	}
	return &DirLock{file: f}, nil
}

// Unlock releases the lock. It is safe to call more than once.
func (l *DirLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	unlockErr := unlockFile(f)
	closeErr := f.Close()
	if err := errors.Join(unlockErr, closeErr); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrLockFailed, err), "failed to release lock"), "path", f.Name())
	}
	return nil
}

func statError(path string, err error) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrPathStatFailed, err), "stat failed"), "path", path)
}

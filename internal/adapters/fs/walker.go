// Package fs provides file system adapters for rule search, scratch files,
// hashing and cleanup.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root, skipping version control
// directories and directories whose name matches one of skipDirs.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, skipDirs []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped rather than aborting the walk.
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d.Name(), skipDirs) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkipDir(name string, skipDirs []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	for _, pattern := range skipDirs {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

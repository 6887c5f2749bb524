package domain

import "path/filepath"

// Target is a path the caller wants built. If it already exists it is a
// source and is left alone.
type Target struct {
	// Name is the path as given on the command line.
	Name string
	// Path is the absolute path, with symlinks in its directory resolved.
	Path string
	// Dir is the directory that will contain the target.
	Dir string
}

// NewTarget creates a Target from its command line name and absolute path.
func NewTarget(name, path string) Target {
	return Target{
		Name: name,
		Path: path,
		Dir:  filepath.Dir(path),
	}
}

// FileName returns the base name of the target.
func (t Target) FileName() string {
	return filepath.Base(t.Path)
}

// RecordPath returns the path of the sibling file holding the target's build record.
func (t Target) RecordPath() string {
	return filepath.Join(t.Dir, RecordFileName(t.FileName()))
}

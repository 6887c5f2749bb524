package domain

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Rule is a discovered build script (a ".do" file).
type Rule struct {
	// Path is the canonical absolute path of the rule file.
	Path string
	// Name is the rule file name that matched the target. It differs from
	// the base of Path when the rule is reached through a symlink.
	Name string
	// Dir is the directory containing the rule; scripts run from here.
	Dir string
	// Generic is true when the rule matched through a default<suffix>.do name.
	Generic bool
	// Executable is true when any execute permission bit is set on the file.
	Executable bool
}

// NewRule creates a Rule for the canonical rule file path.
func NewRule(path string, generic, executable bool) *Rule {
	return &Rule{
		Path:       path,
		Name:       filepath.Base(path),
		Dir:        filepath.Dir(path),
		Generic:    generic,
		Executable: executable,
	}
}

// FileName returns the base name of the rule file.
func (r *Rule) FileName() string {
	return filepath.Base(r.Path)
}

// Suffix returns the target suffix a generic rule encodes, i.e. the part of
// matched name between "default" and ".do". Specific rules have no suffix.
func (r *Rule) Suffix() string {
	if !r.Generic {
		return ""
	}
	name := strings.TrimSuffix(r.Name, RuleExt)
	return strings.TrimPrefix(name, DefaultRulePrefix)
}

// BaseName returns the value handed to the script as $2: the target name with
// the generic rule's suffix removed, or the target name unchanged for
// specific rules.
func (r *Rule) BaseName(targetName string) (string, error) {
	if !r.Generic {
		return targetName, nil
	}

	suffix := r.Suffix()
	if !strings.HasSuffix(targetName, suffix) {
		mismatch := zerr.With(zerr.Wrap(ErrRuleSuffixMismatch, "cannot derive base name"), "rule", r.Path)
		mismatch = zerr.With(mismatch, "suffix", suffix)
		mismatch = zerr.With(mismatch, "target", targetName)
		return "", errors.Join(ErrRuleNotFound, mismatch)
	}
	return strings.TrimSuffix(targetName, suffix), nil
}

// Candidate is a rule file name to probe in a search directory.
type Candidate struct {
	Name    string
	Generic bool
}

// SuffixTails yields the file name followed by every tail starting at a "."
// boundary, ending with the empty string. For "foo.bar.baz" that is
// "foo.bar.baz", ".bar.baz", ".baz" and "".
func SuffixTails(name string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}
		for i := 1; i < len(name); i++ {
			if name[i] != '.' {
				continue
			}
			if !yield(name[i:]) {
				return
			}
		}
		yield("")
	}
}

// Ancestors yields dir followed by each of its parents, ending at the
// filesystem root. dir should be absolute and clean.
func Ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// Candidates yields the rule file names for a target file name, most specific first.
func Candidates(name string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for tail := range SuffixTails(name) {
			generic := tail == "" || tail[0] == '.'
			c := Candidate{Name: tail + RuleExt, Generic: generic}
			if generic {
				c.Name = DefaultRulePrefix + tail + RuleExt
			}
			if !yield(c) {
				return
			}
		}
	}
}

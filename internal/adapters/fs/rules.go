package fs

import (
	"errors"
	"path/filepath"
	"unicode/utf8"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RuleFinder = (*RuleFinder)(nil)

// RuleFinder searches a target's directory and its ancestors for a rule file.
type RuleFinder struct {
	verifier ports.Verifier
}

// NewRuleFinder creates a new RuleFinder.
func NewRuleFinder(verifier ports.Verifier) *RuleFinder {
	return &RuleFinder{verifier: verifier}
}

// FindRule probes, for each directory from the target's own up to the root,
// the specific rule followed by the generic rules for every suffix tail of
// the target's file name. The first existing candidate wins.
func (f *RuleFinder) FindRule(target domain.Target) (*domain.Rule, error) {
	name := target.FileName()
	if !utf8.ValidString(name) || !utf8.ValidString(target.Dir) {
		return nil, zerr.With(zerr.Wrap(domain.ErrPathEncoding, "cannot match rule names"), "target", target.Path)
	}

	for dir := range domain.Ancestors(target.Dir) {
		for candidate := range domain.Candidates(name) {
			path := filepath.Join(dir, candidate.Name)
			exists, err := f.verifier.Exists(path)
			if err != nil {
				return nil, zerr.With(err, "target", target.Name)
			}
			if !exists {
				continue
			}
			return f.loadRule(path, candidate)
		}
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrRuleNotFound, "searched up to root"), "target", target.Name)
}

func (f *RuleFinder) loadRule(path string, candidate domain.Candidate) (*domain.Rule, error) {
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		wrapped := zerr.Wrap(errors.Join(domain.ErrCanonicalizeFailed, err), "failed to resolve rule path")
		return nil, zerr.With(wrapped, "rule", path)
	}

	executable, err := isExecutable(canonical)
	if err != nil {
		return nil, err
	}
	rule := domain.NewRule(canonical, candidate.Generic, executable)
	rule.Name = candidate.Name
	return rule, nil
}

// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/redo/internal/core/domain"

// TargetResolver turns command line target names into absolute targets.
//
//go:generate go run go.uber.org/mock/mockgen -source=rules.go -destination=mocks/mock_rules.go -package=mocks
type TargetResolver interface {
	// ResolveTarget resolves name against workDir. The target's directory must exist.
	ResolveTarget(workDir, name string) (domain.Target, error)
}

// Verifier checks whether paths exist.
type Verifier interface {
	// Exists reports whether path exists. Absence is not an error; any other
	// stat failure is.
	Exists(path string) (bool, error)
}

// RuleFinder locates the rule file that builds a target.
type RuleFinder interface {
	// FindRule searches the target's directory and its ancestors for a rule.
	// It returns domain.ErrRuleNotFound when no candidate exists.
	FindRule(target domain.Target) (*domain.Rule, error)
}

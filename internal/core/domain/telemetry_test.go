package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/redo/internal/core/domain"
)

func TestBuildState_IsTerminal(t *testing.T) {
	tests := []struct {
		name       string
		state      domain.BuildState
		isTerminal bool
	}{
		{"Unresolved", domain.BuildStateUnresolved, false},
		{"RuleFound", domain.BuildStateRuleFound, false},
		{"Executing", domain.BuildStateExecuting, false},
		{"Promoted", domain.BuildStatePromoted, true},
		{"Failed", domain.BuildStateFailed, true},
		{"Source", domain.BuildStateSource, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.state.IsTerminal())
		})
	}
}

func TestBuildState_CanTransition(t *testing.T) {
	assert.True(t, domain.BuildStateUnresolved.CanTransition(domain.BuildStateRuleFound))
	assert.True(t, domain.BuildStateUnresolved.CanTransition(domain.BuildStateSource))
	assert.True(t, domain.BuildStateRuleFound.CanTransition(domain.BuildStateExecuting))
	assert.True(t, domain.BuildStateExecuting.CanTransition(domain.BuildStatePromoted))
	assert.True(t, domain.BuildStateExecuting.CanTransition(domain.BuildStateFailed))

	assert.False(t, domain.BuildStateUnresolved.CanTransition(domain.BuildStateExecuting))
	assert.False(t, domain.BuildStateFailed.CanTransition(domain.BuildStateExecuting))
	assert.False(t, domain.BuildStatePromoted.CanTransition(domain.BuildStateFailed))
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(999), "INFO"}, // Default case
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.LogLevel
	}{
		{"debug", domain.LogLevelDebug},
		{"DEBUG", domain.LogLevelDebug},
		{"warn", domain.LogLevelWarn},
		{"warning", domain.LogLevelWarn},
		{" error ", domain.LogLevelError},
		{"info", domain.LogLevelInfo},
		{"", domain.LogLevelInfo},
		{"verbose", domain.LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseLogLevel(tt.input))
		})
	}
}

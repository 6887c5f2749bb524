package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/core/domain"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		base      []string
		overrides map[string]string
		expected  []string
	}{
		{
			name:     "base only",
			base:     []string{"USER=test", "PATH=/bin"},
			expected: []string{"DO_BUILT=t", "PATH=/bin", "USER=test"},
		},
		{
			name:      "overrides win",
			base:      []string{"USER=test", "PATH=/bin"},
			overrides: map[string]string{"USER": "redo", "CC": "clang"},
			expected:  []string{"CC=clang", "DO_BUILT=t", "PATH=/bin", "USER=redo"},
		},
		{
			name:      "marker cannot be overridden",
			base:      []string{"DO_BUILT=no"},
			overrides: map[string]string{"DO_BUILT": "no"},
			expected:  []string{"DO_BUILT=t"},
		},
		{
			name:     "malformed entries dropped",
			base:     []string{"NOVALUE", "EMPTY="},
			expected: []string{"DO_BUILT=t", "EMPTY="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.base, tt.overrides))
		})
	}
}

func TestCommand(t *testing.T) {
	rule := domain.NewRule("/src/x.do", false, false)
	args := []string{"x", "x", ".redo-tmp-1.out"}

	name, cmdArgs := command(domain.Invocation{Shell: "sh"}, rule, args)
	assert.Equal(t, "sh", name)
	assert.Equal(t, []string{"-e", "/src/x.do", "x", "x", ".redo-tmp-1.out"}, cmdArgs)

	name, cmdArgs = command(domain.Invocation{Trace: true}, rule, args)
	assert.Equal(t, domain.DefaultShell, name)
	assert.Equal(t, []string{"-e", "-x", "/src/x.do", "x", "x", ".redo-tmp-1.out"}, cmdArgs)

	rule.Executable = true
	name, cmdArgs = command(domain.Invocation{Shell: "sh", Trace: true}, rule, args)
	assert.Equal(t, "/src/x.do", name)
	assert.Equal(t, args, cmdArgs)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // Must be executable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), nil, domain.PrivateFilePerm))

	got, err := lookPath("tool", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("plain", []string{"PATH=" + dir})
	require.Error(t, err, "non-executable files are skipped")

	_, err = lookPath("tool", []string{"HOME=/"})
	require.Error(t, err, "no PATH in environment")

	_, err = lookPath("nonexistent", []string{"PATH=" + dir})
	require.Error(t, err)
}

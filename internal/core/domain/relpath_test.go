package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/core/domain"
)

func TestRelativeToDir(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		base     string
		expected string
	}{
		{"same directory", "/hello/world", "/hello", "world"},
		{"subject in child of root", "/hello/world", "/", "hello/world"},
		{"root spelled with dot", "/hello/world", "/.", "hello/world"},
		{"base in sibling directory", "/hello", "/world", "../hello"},
		{"base with trailing slash", "/hello", "/world/", "../hello"},
		{"same directory with common prefix", "/a/hello/world", "/a/hello", "world"},
		{"subject in child with common prefix", "/a/hello/world", "/a/", "hello/world"},
		{"base in sibling with common prefix", "/the/hello", "/the/world", "../hello"},
		{"base below subject", "/a", "/a/b/c", "../.."},
		{"deep divergence", "/a/b/c/d.o", "/a/x/y", "../../b/c/d.o"},
		{"repeated separators", "/a//b", "/a/", "b"},
		{"identical", "/a/b", "/a/b", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.RelativeToDir(tt.subject, tt.base)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.expected), got)
		})
	}
}

func TestRelativeToDir_RejectsRelativePaths(t *testing.T) {
	_, err := domain.RelativeToDir("hello", "/world")
	require.ErrorIs(t, err, domain.ErrPathNotAbsolute)

	_, err = domain.RelativeToDir("/hello", "world")
	require.ErrorIs(t, err, domain.ErrPathNotAbsolute)
}

func TestRelativeToDir_RejectsParentInBase(t *testing.T) {
	_, err := domain.RelativeToDir("/a/hello", "/a/b/../c")
	require.ErrorIs(t, err, domain.ErrPathNotCanonical)
}

// TestRelativeToDir_RoundTrip checks that joining the base with the result
// reaches the subject on a real directory tree.
func TestRelativeToDir_RoundTrip(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	dirs := []string{
		".",
		"foo",
		"bar",
		"foo/baz",
		"foo/baz/quux",
		"bar/quuux",
	}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(root, d, "file"), []byte(d), domain.PrivateFilePerm))
	}

	for _, subjDir := range dirs {
		for _, baseDir := range dirs {
			subject := filepath.Join(root, subjDir, "file")
			base := filepath.Join(root, baseDir)

			rel, err := domain.RelativeToDir(subject, base)
			require.NoError(t, err)
			require.False(t, filepath.IsAbs(rel))

			joined := filepath.Join(base, rel)
			want, err := filepath.EvalSymlinks(subject)
			require.NoError(t, err)
			got, err := filepath.EvalSymlinks(joined)
			require.NoError(t, err, "subject %s base %s rel %s", subject, base, rel)
			assert.Equal(t, want, got, "subject %s base %s rel %s", subject, base, rel)

			content, err := os.ReadFile(joined) //nolint:gosec // Test path under temp dir
			require.NoError(t, err)
			assert.Equal(t, subjDir, string(content))
		}
	}
}

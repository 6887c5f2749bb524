package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/fs"
	"go.trai.ch/redo/internal/core/domain"
)

func TestResolver_ResolveTarget(t *testing.T) {
	root := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o750))

	resolver := fs.NewResolver()

	target, err := resolver.ResolveTarget(root, "sub/hello")
	require.NoError(t, err)
	assert.Equal(t, "sub/hello", target.Name)
	assert.Equal(t, filepath.Join(root, "sub", "hello"), target.Path)
	assert.Equal(t, filepath.Join(root, "sub"), target.Dir)
}

func TestResolver_ResolveTarget_Absolute(t *testing.T) {
	root := canonicalTempDir(t)

	target, err := fs.NewResolver().ResolveTarget("/elsewhere", filepath.Join(root, "out"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out"), target.Path)
}

func TestResolver_ResolveTarget_ResolvesDirectorySymlinks(t *testing.T) {
	root := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias")))

	target, err := fs.NewResolver().ResolveTarget(root, "alias/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "real", "x"), target.Path)
	assert.Equal(t, "alias/x", target.Name)
}

func TestResolver_ResolveTarget_Errors(t *testing.T) {
	root := canonicalTempDir(t)
	resolver := fs.NewResolver()

	_, err := resolver.ResolveTarget(root, "")
	require.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = resolver.ResolveTarget(root, "..")
	require.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = resolver.ResolveTarget(root, "missing/dir/x")
	require.ErrorIs(t, err, domain.ErrCanonicalizeFailed)

	_, err = resolver.ResolveTarget(root, "bad\xffname")
	require.ErrorIs(t, err, domain.ErrPathEncoding)
}

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

func TestVerifier_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	present := filepath.Join(tmpDir, "present")
	writeFile(t, present, "content")

	exists, err := verifier.Exists(present)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = verifier.Exists(filepath.Join(tmpDir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = verifier.Exists(tmpDir)
	require.NoError(t, err)
	assert.True(t, exists, "directories exist too")
}

func TestVerifier_Exists_DanglingSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "nowhere"), link))

	exists, err := fs.NewVerifier().Exists(link)
	require.NoError(t, err)
	assert.False(t, exists, "dangling symlinks do not exist")

	writeFile(t, filepath.Join(tmpDir, "nowhere"), "")
	exists, err = fs.NewVerifier().Exists(link)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestVerifier_Exists_ThroughFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	writeFile(t, file, "")

	// A path below a regular file fails with ENOTDIR, not ENOENT.
	exists, err := fs.NewVerifier().Exists(filepath.Join(file, "child"))
	require.ErrorIs(t, err, domain.ErrPathStatFailed)
	assert.False(t, exists)
}

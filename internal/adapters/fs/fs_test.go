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

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   ignored/file
	//   src/main.go
	//   README.md
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "")
	writeFile(t, filepath.Join(tmpDir, "src", "main.go"), "")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "")

	walker := fs.NewWalker()

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, []string{"ignored"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files[filepath.ToSlash(rel)] = true
	}

	assert.False(t, files[".git/config"], "expected .git/config to be skipped")
	assert.False(t, files["ignored/file"], "expected ignored/file to be skipped")
	assert.True(t, files["src/main.go"])
	assert.True(t, files["README.md"])
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a"), "")
	writeFile(t, filepath.Join(tmpDir, "b"), "")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello")
	writeFile(t, path, "hello world")

	hasher := fs.NewHasher()

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "expected deterministic hash")
}

func TestHasher_Checksum(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	writeFile(t, a, "one")
	writeFile(t, b, "two")

	hasher := fs.NewHasher()

	sumA, err := hasher.Checksum(a)
	require.NoError(t, err)
	assert.Len(t, sumA, 16)

	sumB, err := hasher.Checksum(b)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)

	// Empty files still hash.
	empty := filepath.Join(dir, "empty")
	writeFile(t, empty, "")
	sumEmpty, err := hasher.Checksum(empty)
	require.NoError(t, err)
	assert.Len(t, sumEmpty, 16)
}

func TestHasher_Checksum_Missing(t *testing.T) {
	_, err := fs.NewHasher().Checksum(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, domain.ErrFileOpenFailed)
}

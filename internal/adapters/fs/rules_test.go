package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/fs"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestRuleFinder_FindRule(t *testing.T) {
	root := canonicalTempDir(t)

	tests := []struct {
		name        string
		rules       []string
		target      string
		wantRule    string
		wantGeneric bool
	}{
		{
			name:     "specific rule in same directory",
			rules:    []string{"a/x.c.do", "a/default.c.do"},
			target:   "a/x.c",
			wantRule: "a/x.c.do",
		},
		{
			name:        "generic rule in same directory",
			rules:       []string{"a/default.c.do"},
			target:      "a/x.c",
			wantRule:    "a/default.c.do",
			wantGeneric: true,
		},
		{
			name:        "longest suffix first",
			rules:       []string{"a/default.tar.gz.do", "a/default.gz.do"},
			target:      "a/pkg.tar.gz",
			wantRule:    "a/default.tar.gz.do",
			wantGeneric: true,
		},
		{
			name:        "catch-all rule",
			rules:       []string{"a/default.do"},
			target:      "a/anything",
			wantRule:    "a/default.do",
			wantGeneric: true,
		},
		{
			name:        "nearer directory beats more specific ancestor rule",
			rules:       []string{"a/default.do", "x.c.do"},
			target:      "a/x.c",
			wantRule:    "a/default.do",
			wantGeneric: true,
		},
		{
			name:        "generic rule in ancestor",
			rules:       []string{"default.o.do"},
			target:      "a/b/x.o",
			wantRule:    "default.o.do",
			wantGeneric: true,
		},
		{
			name:     "target literally named default",
			rules:    []string{"a/default.x.do"},
			target:   "a/default.x",
			wantRule: "a/default.x.do",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caseDir := filepath.Join(root, string(rune('a'+i)))
			require.NoError(t, os.MkdirAll(filepath.Join(caseDir, "a", "b"), 0o750))
			for _, r := range tt.rules {
				writeFile(t, filepath.Join(caseDir, r), "true\n")
			}

			target := domain.NewTarget(tt.target, filepath.Join(caseDir, tt.target))
			rule, err := fs.NewRuleFinder(fs.NewVerifier()).FindRule(target)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(caseDir, tt.wantRule), rule.Path)
			assert.Equal(t, filepath.Dir(rule.Path), rule.Dir)
			assert.Equal(t, tt.wantGeneric, rule.Generic)
			assert.False(t, rule.Executable)
		})
	}
}

func TestRuleFinder_FindRule_Executable(t *testing.T) {
	root := canonicalTempDir(t)
	path := filepath.Join(root, "x.do")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // Rule must be executable

	rule, err := fs.NewRuleFinder(fs.NewVerifier()).FindRule(domain.NewTarget("x", filepath.Join(root, "x")))
	require.NoError(t, err)
	assert.True(t, rule.Executable)
}

func TestRuleFinder_FindRule_ResolvesSymlinkedRule(t *testing.T) {
	root := canonicalTempDir(t)
	writeFile(t, filepath.Join(root, "rules", "build.do"), "true\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "out"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(root, "rules", "build.do"), filepath.Join(root, "out", "x.do")))

	rule, err := fs.NewRuleFinder(fs.NewVerifier()).FindRule(domain.NewTarget("out/x", filepath.Join(root, "out", "x")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "rules", "build.do"), rule.Path)
	assert.Equal(t, filepath.Join(root, "rules"), rule.Dir)
}

func TestRuleFinder_FindRule_SymlinkedGenericRule(t *testing.T) {
	root := canonicalTempDir(t)
	writeFile(t, filepath.Join(root, "compile.sh"), "true\n")
	require.NoError(t, os.Symlink(filepath.Join(root, "compile.sh"), filepath.Join(root, "default.o.do")))

	rule, err := fs.NewRuleFinder(fs.NewVerifier()).FindRule(domain.NewTarget("x.o", filepath.Join(root, "x.o")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "compile.sh"), rule.Path)
	assert.Equal(t, "default.o.do", rule.Name)
	assert.True(t, rule.Generic)
	assert.Equal(t, ".o", rule.Suffix())

	base, err := rule.BaseName("x.o")
	require.NoError(t, err)
	assert.Equal(t, "x", base)
}

func TestRuleFinder_FindRule_SkipsDanglingCandidate(t *testing.T) {
	root := canonicalTempDir(t)
	writeFile(t, filepath.Join(root, "default.do"), "true\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub", "nowhere.do"), filepath.Join(root, "sub", "x.do")))

	rule, err := fs.NewRuleFinder(fs.NewVerifier()).FindRule(domain.NewTarget("sub/x", filepath.Join(root, "sub", "x")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "default.do"), rule.Path)
	assert.True(t, rule.Generic)
}

func TestRuleFinder_FindRule_SearchOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockVerifier(ctrl)

	gomock.InOrder(
		verifier.EXPECT().Exists("/p/q/x.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/p/q/default.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/p/q/default.do").Return(false, nil),
		verifier.EXPECT().Exists("/p/x.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/p/default.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/p/default.do").Return(false, nil),
		verifier.EXPECT().Exists("/x.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/default.c.do").Return(false, nil),
		verifier.EXPECT().Exists("/default.do").Return(false, nil),
	)

	_, err := fs.NewRuleFinder(verifier).FindRule(domain.NewTarget("x.c", "/p/q/x.c"))
	require.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestRuleFinder_FindRule_StatError(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockVerifier(ctrl)
	verifier.EXPECT().Exists("/p/x.do").Return(false, zerr.Wrap(domain.ErrPathStatFailed, "permission denied"))

	_, err := fs.NewRuleFinder(verifier).FindRule(domain.NewTarget("x", "/p/x"))
	require.ErrorIs(t, err, domain.ErrPathStatFailed)
}

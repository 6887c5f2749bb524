package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// RelativeToDir expresses subject relative to the directory baseDir, so that
// joining baseDir with the result names the same file as subject.
//
// Both paths must be absolute. Leading components shared by both are dropped,
// every remaining component of baseDir becomes "..", and the rest of subject
// is appended verbatim. A ".." left over in baseDir cannot be climbed without
// touching the filesystem, so it is rejected with ErrPathNotCanonical.
func RelativeToDir(subject, baseDir string) (string, error) {
	if !filepath.IsAbs(subject) {
		return "", zerr.With(zerr.Wrap(ErrPathNotAbsolute, "subject path"), "path", subject)
	}
	if !filepath.IsAbs(baseDir) {
		return "", zerr.With(zerr.Wrap(ErrPathNotAbsolute, "base directory"), "path", baseDir)
	}

	subj := components(subject)
	base := components(baseDir)

	common := 0
	for common < len(subj) && common < len(base) && subj[common] == base[common] {
		common++
	}

	parts := make([]string, 0, len(base)-common+len(subj)-common)
	for _, c := range base[common:] {
		if c == ".." {
			return "", zerr.With(zerr.Wrap(ErrPathNotCanonical, "base directory"), "path", baseDir)
		}
		parts = append(parts, "..")
	}
	parts = append(parts, subj[common:]...)

	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, string(filepath.Separator)), nil
}

// components splits an absolute path into its named components. The root,
// empty components from repeated or trailing separators, and "." are dropped.
func components(p string) []string {
	p = strings.TrimPrefix(p, filepath.VolumeName(p))
	raw := strings.Split(p, string(filepath.Separator))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" || c == "." {
			continue
		}
		out = append(out, c)
	}
	return out
}

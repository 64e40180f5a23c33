// Package paths holds the file naming rules shared by the template store,
// the content loader and the generator.
package paths

import (
	"errors"
	"path/filepath"
	"strings"
)

// Stem returns the file name without its final extension:
// "hello.md" -> "hello", "a.b.md" -> "a.b", "notes" -> "notes".
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsHidden reports whether a directory entry name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ErrEscapesRoot is returned by Within when the relative path leaves the root.
var ErrEscapesRoot = errors.New("path escapes root directory")

// Within joins rel onto root and rejects absolute paths and paths that
// resolve outside root.
func Within(root, rel string) (string, error) {
	if rel == "" {
		return "", errors.New("path is required")
	}
	cleanRel := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", ErrEscapesRoot
	}
	full := filepath.Join(root, cleanRel)
	r, err := filepath.Rel(root, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", ErrEscapesRoot
	}
	return full, nil
}

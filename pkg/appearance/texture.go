package appearance

import (
	"os"
	"strings"
)

// TextureChecker decides whether a texture path can be shown.
type TextureChecker interface {
	Exists(path string) bool
}

// FileChecker accepts paths naming an existing, readable regular file.
// Only existence is checked; image content is never read or cached.
type FileChecker struct{}

// Exists implements TextureChecker.
func (FileChecker) Exists(path string) bool {
	path = CleanPath(path)
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// CheckerFunc adapts a function to TextureChecker.
type CheckerFunc func(path string) bool

// Exists implements TextureChecker.
func (f CheckerFunc) Exists(path string) bool {
	return f(path)
}

// CleanPath trims surrounding whitespace from a texture property value.
func CleanPath(p string) string {
	return strings.TrimSpace(p)
}

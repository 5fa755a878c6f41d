package fs

import (
	"path/filepath"
)

// CanonicalPath returns the canonical, absolute path by resolving symlinks.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

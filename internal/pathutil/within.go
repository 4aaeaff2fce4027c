// Package pathutil checks file paths read from untrusted places, such as
// rows of the history database, before they are opened.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Redact shortens a path to .../<parent>/<base> for error messages.
func Redact(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(cleaned)
	}
	return ".../" + parent + "/" + filepath.Base(cleaned)
}

// Within returns an error unless path resolves to a location inside dir.
// Symlinks are resolved on the deepest existing ancestor of both paths, so
// neither needs to exist yet.
func Within(path, dir string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("path contains null byte")
	}

	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	base, err := resolve(dir)
	if err != nil {
		return err
	}

	if resolved != base && !strings.HasPrefix(resolved, base+string(os.PathSeparator)) {
		return fmt.Errorf("%q is outside %s", Redact(resolved), Redact(base))
	}
	return nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", Redact(path), err)
	}
	return evalExisting(abs)
}

// evalExisting resolves symlinks on the deepest existing ancestor of path
// and re-appends the missing tail.
func evalExisting(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(path)
	if parent == path {
		return "", fmt.Errorf("cannot resolve %s", Redact(path))
	}
	resolvedParent, err := evalExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(path)), nil
}

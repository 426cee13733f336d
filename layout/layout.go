// Package layout maps logical entry paths (e.g. "work/github") onto
// filesystem locations under the store root, and locates the store root
// itself.
package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned when a logical path is empty, absolute, or
// traverses outside the store via "..".
var ErrInvalidPath = errors.New("invalid logical path")

const storeLeafName = "pm-store"

// StoreRoot returns the absolute directory that holds config.json and
// the store/ subtree, derived on each call from the platform's user
// config directory.
func StoreRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, storeLeafName), nil
}

// normalize converts backslashes to slashes and validates the result:
// non-empty, slash-separated, no leading slash, no ".." component.
func normalize(logicalPath string) (string, error) {
	p := strings.ReplaceAll(logicalPath, `\`, "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	if strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	parts := strings.Split(p, "/")
	for _, part := range parts {
		if part == "" || part == ".." {
			return "", ErrInvalidPath
		}
	}
	return p, nil
}

// ValidatePath reports whether logicalPath is well-formed without
// resolving it to a file path.
func ValidatePath(logicalPath string) error {
	_, err := normalize(logicalPath)
	return err
}

// EntryFilePath returns the on-disk file (StoreRoot/store/<path>.enc)
// that backs logicalPath.
func EntryFilePath(logicalPath string) (string, error) {
	rel, err := normalize(logicalPath)
	if err != nil {
		return "", err
	}
	root, err := StoreRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "store", filepath.FromSlash(rel)+".enc"), nil
}

// StoreDir returns StoreRoot/store.
func StoreDir() (string, error) {
	root, err := StoreRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "store"), nil
}

// EnsureStoreDirs creates the parent directories for logicalPath's entry
// file, with mkdir -p semantics.
func EnsureStoreDirs(logicalPath string) error {
	file, err := EntryFilePath(logicalPath)
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(file), 0o700)
}

// ConfigPath returns StoreRoot/config.json.
func ConfigPath() (string, error) {
	root, err := StoreRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config.json"), nil
}

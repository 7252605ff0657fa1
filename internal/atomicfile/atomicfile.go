// Package atomicfile replaces files without exposing partial contents.
//
// Readers of a file written with WriteFile see either the old contents or
// the new ones. The data is staged in a temp file named TempPrefix + random
// suffix next to the target; watchers of the directory should ignore such
// names (see IsTemp).
package atomicfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// TempPrefix starts the name of every staging file.
const TempPrefix = ".tmp-"

// IsTemp reports whether name (a base name or a path) is a staging file.
func IsTemp(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempPrefix)
}

// WriteFile writes data to path atomically. Missing parent directories are
// created. The staging file is synced before it is renamed over path, and is
// removed when anything fails.
func WriteFile(path string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmpPath, err := stage(dir, data, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	return replace(tmpPath, path)
}

// stage writes data to a new staging file in dir and returns its path.
func stage(dir string, data []byte, perm fs.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, TempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()

	if err := fill(tmp, data, perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temp: %w", err)
	}
	return name, nil
}

func fill(f *os.File, data []byte, perm fs.FileMode) error {
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	// CreateTemp uses 0600; Chmod is best effort on filesystems without modes.
	_ = f.Chmod(perm)
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	return nil
}

// replace renames tmpPath over path. Windows refuses to rename over an
// existing file that is open elsewhere, so there the target is removed and
// the rename retried once.
func replace(tmpPath, path string) error {
	err := os.Rename(tmpPath, path)
	if err == nil {
		return nil
	}
	if runtime.GOOS != "windows" {
		return fmt.Errorf("rename: %w", err)
	}

	_ = os.Remove(path)
	if err2 := os.Rename(tmpPath, path); err2 != nil {
		return fmt.Errorf("rename: %v (after remove: %w)", err, err2)
	}
	return nil
}

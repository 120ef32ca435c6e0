// Package fsutil holds filesystem helpers shared by the config and metrics
// writers.
package fsutil

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces path with data so readers never see a partial
// file. Missing parent directories are created. An existing file keeps its
// permissions; perm applies to new files only.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return replaceFile(path, data, perm)
}

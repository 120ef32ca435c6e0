//go:build windows

package fsutil

import (
	"os"
)

// replaceFile swaps path for a file holding data.
// On Windows, we use a write-rename pattern since renameio doesn't support Windows.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, perm); err != nil {
		return err
	}

	// Atomic on Windows when same volume
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return err
	}

	return nil
}

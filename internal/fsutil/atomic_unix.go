//go:build !windows

package fsutil

import (
	"os"

	"github.com/google/renameio/v2"
)

// replaceFile swaps path for a file holding data.
// On Unix systems, this uses renameio for atomic writes.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}

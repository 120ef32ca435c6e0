package config

import (
	"fmt"
	"os"

	"github.com/hugo-lorenzo-mato/waitfile/internal/fsutil"
)

// WriteSampleConfig writes DefaultConfigYAML to path. An existing file is
// left untouched unless force is set.
func WriteSampleConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking config file: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, []byte(DefaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

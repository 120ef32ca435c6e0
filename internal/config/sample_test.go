package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWriteSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigName)

	if err := WriteSampleConfig(path, false); err != nil {
		t.Fatalf("WriteSampleConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DefaultConfigYAML {
		t.Error("written content differs from DefaultConfigYAML")
	}

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	err = WriteSampleConfig(path, false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second write error = %v, want already exists", err)
	}
	if err := WriteSampleConfig(path, true); err != nil {
		t.Errorf("forced write error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Errorf("perm = %v, want existing 0600 preserved", info.Mode().Perm())
	}
}

func TestUserConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := UserConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "waitfile", "config.yaml"); got != want {
		t.Errorf("UserConfigPath() = %q, want %q", got, want)
	}
}

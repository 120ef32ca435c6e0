package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "WAITFILE"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (WAITFILE_*)
// 3. Project config (.waitfile.yaml in current directory)
// 4. User config (~/.config/waitfile/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.readConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// readConfig reads the explicit config file, or else the project file in
// the working directory, or else the per-user file. A missing file is fine.
func (l *Loader) readConfig() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}

	l.v.SetConfigName(strings.TrimSuffix(ProjectConfigName, ".yaml"))
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(".")

	err := l.v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}

	userPath, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(userPath); err != nil {
		return nil
	}
	l.v.SetConfigFile(userPath)
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// setDefaults configures default values. Every key is registered so that
// AutomaticEnv can resolve it during Unmarshal.
func (l *Loader) setDefaults() {
	l.v.SetDefault("wait.resources", []string{})
	l.v.SetDefault("wait.delay", "0s")
	l.v.SetDefault("wait.interval", "250ms")
	l.v.SetDefault("wait.window", "750ms")
	l.v.SetDefault("wait.timeout", TimeoutInfinite)
	l.v.SetDefault("wait.reverse", false)
	l.v.SetDefault("wait.log", false)
	l.v.SetDefault("wait.verbose", false)

	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("log.no_color", false)
	l.v.SetDefault("log.redact_patterns", []string{})

	l.v.SetDefault("metrics.file", "")
}

// ConfigFile returns the config file path if one was used.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Set sets a configuration value.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}



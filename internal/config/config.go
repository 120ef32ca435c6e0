package config

// Config holds all application configuration.
type Config struct {
	Wait    WaitConfig    `mapstructure:"wait" yaml:"wait"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// WaitConfig configures a wait run. Durations are strings so that both
// Go duration syntax ("1.5s") and bare milliseconds ("1500") are accepted.
type WaitConfig struct {
	Resources []string `mapstructure:"resources" yaml:"resources"`
	Delay     string   `mapstructure:"delay" yaml:"delay"`
	Interval  string   `mapstructure:"interval" yaml:"interval"`
	Window    string   `mapstructure:"window" yaml:"window"`
	Timeout   string   `mapstructure:"timeout" yaml:"timeout"`
	Reverse   bool     `mapstructure:"reverse" yaml:"reverse"`
	Log       bool     `mapstructure:"log" yaml:"log"`
	Verbose   bool     `mapstructure:"verbose" yaml:"verbose"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level          string   `mapstructure:"level" yaml:"level"`
	Format         string   `mapstructure:"format" yaml:"format"`
	NoColor        bool     `mapstructure:"no_color" yaml:"no_color"`
	RedactPatterns []string `mapstructure:"redact_patterns" yaml:"redact_patterns"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// File is written once when a run finishes. Empty disables the export.
	File string `mapstructure:"file" yaml:"file"`
}

package config

import (
	"errors"

	"github.com/hugo-lorenzo-mato/waitfile/internal/logging"
	"github.com/hugo-lorenzo-mato/waitfile/internal/waiter"
)

// WaitOptions validates cfg and converts its wait section into normalized
// runner options. Config errors come back as a single validation
// DomainError; option errors are those of waiter.Normalize.
func (c *Config) WaitOptions() (waiter.Options, error) {
	if err := ValidateConfig(c); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return waiter.Options{}, verrs.DomainError()
		}
		return waiter.Options{}, err
	}

	// Durations were checked above.
	delay, _ := ParseDuration(c.Wait.Delay)
	interval, _ := ParseDuration(c.Wait.Interval)
	window, _ := ParseDuration(c.Wait.Window)
	timeout, _ := ParseTimeout(c.Wait.Timeout)

	return waiter.Normalize(&waiter.Options{
		Resources: c.Wait.Resources,
		Delay:     delay,
		Interval:  interval,
		Window:    window,
		Timeout:   timeout,
		Reverse:   c.Wait.Reverse,
		Log:       c.Wait.Log,
		Verbose:   c.Wait.Verbose,
	})
}

// LoggingConfig maps the log section onto a logger configuration. Verbose
// waits need debug lines, so they force the debug level.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.NoColor = c.Log.NoColor
	cfg.RedactPatterns = c.Log.RedactPatterns
	if c.Wait.Verbose {
		cfg.Level = "debug"
	}
	return cfg
}

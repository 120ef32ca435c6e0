package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
	"github.com/hugo-lorenzo-mato/waitfile/internal/logging"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// DomainError wraps the collected errors in a validation DomainError so
// callers can classify them like option errors.
func (e ValidationErrors) DomainError() *core.DomainError {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return core.ErrValidation(core.CodeInvalidConfig,
		"invalid configuration: "+strings.Join(fields, ", ")).
		WithCause(e).
		WithDetail("fields", fields)
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration. An empty resource list is
// accepted here; it is rejected when the config is turned into wait options.
func (v *Validator) Validate(cfg *Config) error {
	v.validateWait(&cfg.Wait)
	v.validateLog(&cfg.Log)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateWait(cfg *WaitConfig) {
	for i, r := range cfg.Resources {
		if strings.TrimSpace(r) == "" {
			v.addError(fmt.Sprintf("wait.resources[%d]", i), r, "must be a non-empty path")
		}
	}

	for _, f := range []struct {
		field string
		value string
	}{
		{"wait.delay", cfg.Delay},
		{"wait.interval", cfg.Interval},
		{"wait.window", cfg.Window},
	} {
		v.checkDuration(f.field, f.value, ParseDuration)
	}
	v.checkDuration("wait.timeout", cfg.Timeout, ParseTimeout)
}

func (v *Validator) checkDuration(field, value string, parse func(string) (time.Duration, error)) {
	if _, err := parse(value); err != nil {
		v.addError(field, value, err.Error())
	}
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}

	if err := logging.ValidatePatterns(cfg.RedactPatterns); err != nil {
		v.addError("log.redact_patterns", cfg.RedactPatterns, err.Error())
	}
}

// ValidateConfig is a convenience function that creates a validator and validates config.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}

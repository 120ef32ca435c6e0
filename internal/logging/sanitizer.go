package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sanitizer shortens home-directory paths to "~" and redacts configured
// patterns in log messages.
type Sanitizer struct {
	home     string
	patterns []*regexp.Regexp
	redacted string
}

// NewSanitizer creates a sanitizer for the current user's home directory.
func NewSanitizer() *Sanitizer {
	home, _ := os.UserHomeDir()
	return NewSanitizerWithHome(home)
}

// NewSanitizerWithHome creates a sanitizer for an explicit home directory.
// An empty home disables path shortening.
func NewSanitizerWithHome(home string) *Sanitizer {
	if home != "" {
		home = filepath.Clean(home)
		if home == string(filepath.Separator) {
			home = ""
		}
	}
	return &Sanitizer{
		home:     home,
		redacted: "[REDACTED]",
	}
}

// Sanitize rewrites a string for logging.
func (s *Sanitizer) Sanitize(input string) string {
	result := s.shortenHome(input)
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, s.redacted)
	}
	return result
}

func (s *Sanitizer) shortenHome(input string) string {
	if s.home == "" || !strings.Contains(input, s.home) {
		return input
	}
	sep := string(filepath.Separator)
	var b strings.Builder
	rest := input
	for {
		i := strings.Index(rest, s.home)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := i + len(s.home)
		// Only whole path components: /home/al must not match /home/alice.
		if end == len(rest) || strings.HasPrefix(rest[end:], sep) {
			b.WriteString(rest[:i])
			b.WriteString("~")
		} else {
			b.WriteString(rest[:end])
		}
		rest = rest[end:]
	}
}

// AddPattern adds a custom redaction pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}

// SetRedactedPlaceholder sets the placeholder text for redacted content.
func (s *Sanitizer) SetRedactedPlaceholder(placeholder string) {
	s.redacted = placeholder
}

// ValidatePatterns reports the first pattern that does not compile.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
	}
	return nil
}

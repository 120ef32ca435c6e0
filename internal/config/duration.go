package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/waiter"
)

// Timeout values meaning "wait forever".
const (
	TimeoutInfinite = "infinite"
	TimeoutNone     = "none"
)

// ParseDuration parses a non-negative duration. A bare integer is read as
// milliseconds; anything else must be Go duration syntax.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var d time.Duration
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return 0, fmt.Errorf("invalid duration %q: use Go syntax (e.g. 750ms, 2s) or milliseconds", s)
		}
		d = parsed
	}

	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", s)
	}
	return d, nil
}

// ParseTimeout parses a timeout. Empty, "infinite" and "none" mean the run
// is unbounded and yield waiter.NoTimeout.
func ParseTimeout(s string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", TimeoutInfinite, TimeoutNone:
		return waiter.NoTimeout, nil
	}
	return ParseDuration(s)
}

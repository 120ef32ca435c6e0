package waiter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
)

// Defaults applied by DefaultOptions.
const (
	DefaultDelay    time.Duration = 0
	DefaultInterval               = 250 * time.Millisecond
	DefaultWindow                 = 750 * time.Millisecond
)

// NoTimeout disables the timeout guard. A run with NoTimeout and resources
// that never settle does not terminate unless its context is canceled.
const NoTimeout time.Duration = -1

// Options configures one wait. Build it with DefaultOptions: the zero value
// of a duration is a literal zero, not "use the default".
type Options struct {
	// Resources are the paths to wait for. Required, non-empty, no blank or
	// whitespace-only entries.
	Resources []string

	// Delay before the first tick.
	Delay time.Duration

	// Interval between ticks.
	Interval time.Duration

	// Window is the quiet period that must pass with no size changes.
	// Raised to Interval when smaller.
	Window time.Duration

	// Timeout bounds the whole run. NoTimeout waits forever; zero fails at once.
	Timeout time.Duration

	// Reverse waits for resources to become unavailable instead.
	Reverse bool

	// Log enables progress lines: waiting-set changes and terminal events.
	Log bool

	// Verbose enables per-tick trace lines at debug level. They are written
	// even when the runner's logger is configured above debug.
	Verbose bool
}

// DefaultOptions returns options for resources with every other field at
// its default.
func DefaultOptions(resources ...string) Options {
	return Options{
		Resources: resources,
		Delay:     DefaultDelay,
		Interval:  DefaultInterval,
		Window:    DefaultWindow,
		Timeout:   NoTimeout,
	}
}

// Normalize validates opts and returns the effective, independent copy used
// by a run. Errors are validation DomainErrors.
func Normalize(opts *Options) (Options, error) {
	if opts == nil {
		return Options{}, core.ErrValidation(core.CodeInvalidOptions, "options must be provided")
	}
	if len(opts.Resources) == 0 {
		return Options{}, core.ErrValidation(core.CodeMissingResources, `"resources" is required and must contain at least one path`)
	}
	for i, r := range opts.Resources {
		if strings.TrimSpace(r) == "" {
			return Options{}, core.ErrValidation(core.CodeInvalidResource,
				fmt.Sprintf(`"resources[%d]" must be a non-empty string`, i))
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"delay", opts.Delay},
		{"interval", opts.Interval},
		{"window", opts.Window},
	}
	for _, d := range durations {
		if d.value < 0 {
			return Options{}, invalidDuration(d.name, d.value)
		}
	}
	if opts.Timeout < 0 && opts.Timeout != NoTimeout {
		return Options{}, invalidDuration("timeout", opts.Timeout)
	}

	out := *opts
	out.Resources = slices.Clone(opts.Resources)
	if out.Window < out.Interval {
		out.Window = out.Interval
	}
	return out, nil
}

func invalidDuration(name string, value time.Duration) *core.DomainError {
	return core.ErrValidation(core.CodeInvalidDuration,
		fmt.Sprintf("%q must be greater than or equal to 0", name)).
		WithDetail("field", name).
		WithDetail("value", value.String())
}

// FormatTimeout renders a timeout for display; NoTimeout is "infinite".
func FormatTimeout(d time.Duration) string {
	if d == NoTimeout {
		return "infinite"
	}
	return d.String()
}

// HasTimeout reports whether the timeout guard is armed.
func (o Options) HasTimeout() bool {
	return o.Timeout != NoTimeout
}

// Package stability decides when a set of polled resources has settled.
//
// The Engine is a pure state machine with no clock of its own. The caller
// feeds it one snapshot per tick with Observe and closes fixed-length windows
// with CloseWindow; a window that closes without any distinct snapshot while
// every resource satisfies the readiness predicate settles the run.
package stability

import (
	"slices"

	"github.com/hugo-lorenzo-mato/waitfile/internal/snapshot"
)

// Verdict is the outcome of closing a window.
type Verdict int

const (
	// VerdictPending means no baseline snapshot has been observed yet.
	VerdictPending Verdict = iota
	// VerdictChanged means distinct snapshots arrived during the window.
	VerdictChanged
	// VerdictNotReady means the window was quiet but some resources are not ready.
	VerdictNotReady
	// VerdictSettled means the window was quiet and every resource is ready.
	VerdictSettled
)

func (v Verdict) String() string {
	switch v {
	case VerdictPending:
		return "pending"
	case VerdictChanged:
		return "changed"
	case VerdictNotReady:
		return "not_ready"
	case VerdictSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Observation describes what a single snapshot did to the engine state.
type Observation struct {
	// Baseline is true for the first snapshot of a run.
	Baseline bool

	// Distinct is true when the snapshot differs from the previous one.
	// The baseline is distinct but is not counted as a change.
	Distinct bool

	// NotReady lists resources failing the readiness predicate, in configured order.
	NotReady []string

	// WaitingChanged is true when NotReady is non-empty and differs from the
	// last reported waiting set. Used to suppress repeated log lines.
	WaitingChanged bool
}

// Engine tracks deduplicated snapshots and per-window change counts.
// It is not safe for concurrent use; one run owns one engine.
type Engine struct {
	resources []string
	reverse   bool

	last    snapshot.Snapshot
	changes int
	waiting []string
}

// New creates an engine for resources. With reverse set, a resource is
// ready when it is absent instead of present.
func New(resources []string, reverse bool) *Engine {
	return &Engine{
		resources: slices.Clone(resources),
		reverse:   reverse,
	}
}

// Observe feeds the snapshot produced by one tick.
func (e *Engine) Observe(s snapshot.Snapshot) Observation {
	var obs Observation

	switch {
	case e.last == nil:
		obs.Baseline = true
		obs.Distinct = true
	case !e.last.Equal(s):
		obs.Distinct = true
		e.changes++
	}
	if obs.Distinct {
		e.last = s.Clone()
	}

	obs.NotReady = e.NotReady()
	if len(obs.NotReady) > 0 && !slices.Equal(obs.NotReady, e.waiting) {
		e.waiting = obs.NotReady
		obs.WaitingChanged = true
	}
	return obs
}

// CloseWindow ends the current window and resets its change count.
func (e *Engine) CloseWindow() Verdict {
	if e.last == nil {
		return VerdictPending
	}
	changes := e.changes
	e.changes = 0

	switch {
	case changes > 0:
		return VerdictChanged
	case len(e.NotReady()) > 0:
		return VerdictNotReady
	default:
		return VerdictSettled
	}
}

// Ready applies the readiness predicate to one resource using the last
// observed snapshot.
func (e *Engine) Ready(resource string) bool {
	if e.last == nil {
		return false
	}
	return e.last.Available(resource) != e.reverse
}

// NotReady returns the resources failing the readiness predicate.
// Before the first snapshot every resource is not ready.
func (e *Engine) NotReady() []string {
	var out []string
	for _, resource := range e.resources {
		if !e.Ready(resource) {
			out = append(out, resource)
		}
	}
	return out
}

// Waiting returns the most recently reported non-empty waiting set.
func (e *Engine) Waiting() []string {
	return slices.Clone(e.waiting)
}

// PendingChanges returns the distinct snapshots counted in the open window.
func (e *Engine) PendingChanges() int {
	return e.changes
}

// Last returns a copy of the last distinct snapshot, or nil.
func (e *Engine) Last() snapshot.Snapshot {
	return e.last.Clone()
}

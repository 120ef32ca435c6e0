// Package waiter blocks until a set of files exist (or, in reverse mode, are
// gone) and have stopped changing size for a quiet window.
//
// A run polls every resource on a fixed interval, drops snapshots equal to
// the previous one, and succeeds the first time a window closes with no
// distinct snapshot while every resource is ready. An optional timeout
// fails the run instead. Exactly one terminal outcome is delivered.
package waiter

import (
	"context"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/waitfile/internal/logging"
	"github.com/hugo-lorenzo-mato/waitfile/internal/metrics"
	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
	"github.com/hugo-lorenzo-mato/waitfile/internal/snapshot"
)

// Runner starts runs with shared dependencies. Runs started from the same
// Runner share no mutable state with each other.
type Runner struct {
	logger      *logging.Logger
	prober      probe.Prober
	recorder    *metrics.Recorder
	concurrency int
	newID       func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that receives progress and trace lines.
// Trace lines of verbose runs bypass the logger's configured level.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProber replaces the filesystem prober.
func WithProber(p probe.Prober) Option {
	return func(r *Runner) {
		if p != nil {
			r.prober = p
		}
	}
}

// WithRecorder records run statistics into rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithConcurrency bounds concurrent probes within one tick.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithIDGenerator overrides how run identifiers are generated.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRunner creates a Runner. Without options it stats the local
// filesystem and discards all log output.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:      logging.NewNop(),
		prober:      probe.NewFileProber(),
		concurrency: snapshot.DefaultConcurrency,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start validates opts and begins polling in the background. Validation
// errors are returned before any timer or probe is created.
func (r *Runner) Start(ctx context.Context, opts *Options) (*Run, error) {
	normalized, err := Normalize(opts)
	if err != nil {
		r.recorder.ObserveRun(metrics.OutcomeInvalid, 0)
		r.logger.Debug("rejected wait options", "error", err)
		return nil, err
	}
	run := newRun(r, normalized, nil)
	run.start(ctx)
	return run, nil
}

// Wait blocks until the run settles, fails, or ctx is canceled.
// It returns nil on success.
func (r *Runner) Wait(ctx context.Context, opts *Options) error {
	run, err := r.Start(ctx, opts)
	if err != nil {
		return err
	}
	<-run.Done()
	return run.Err()
}

// WaitFunc starts a run and invokes cb exactly once with its outcome.
// Validation errors invoke cb synchronously before WaitFunc returns;
// otherwise cb runs on the run's goroutine after it has released its timers.
func (r *Runner) WaitFunc(ctx context.Context, opts *Options, cb func(error)) {
	if cb == nil {
		cb = func(error) {}
	}
	normalized, err := Normalize(opts)
	if err != nil {
		r.recorder.ObserveRun(metrics.OutcomeInvalid, 0)
		cb(err)
		return
	}
	run := newRun(r, normalized, cb)
	run.start(ctx)
}

var defaultRunner = NewRunner()

// Start begins a run with the default Runner.
func Start(ctx context.Context, opts *Options) (*Run, error) {
	return defaultRunner.Start(ctx, opts)
}

// Wait blocks on a run with the default Runner.
func Wait(ctx context.Context, opts *Options) error {
	return defaultRunner.Wait(ctx, opts)
}

// WaitFunc runs with the default Runner and reports through cb.
func WaitFunc(ctx context.Context, opts *Options, cb func(error)) {
	defaultRunner.WaitFunc(ctx, opts, cb)
}

package waiter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
	"github.com/hugo-lorenzo-mato/waitfile/internal/logging"
	"github.com/hugo-lorenzo-mato/waitfile/internal/metrics"
	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
	"github.com/hugo-lorenzo-mato/waitfile/internal/snapshot"
	"github.com/hugo-lorenzo-mato/waitfile/internal/stability"
)

// ErrStopped is the cause recorded when Run.Stop ends a run.
var ErrStopped = errors.New("run stopped")

// State is the lifecycle state of a run.
type State int

const (
	StateRunning State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run is a single in-flight wait.
type Run struct {
	id        string
	opts      Options
	engine    *stability.Engine
	collector *snapshot.Collector
	recorder  *metrics.Recorder
	progress  *logging.Logger
	trace     *logging.Logger
	onDone    func(error)

	cancel   context.CancelCauseFunc
	inflight sync.WaitGroup
	started  time.Time

	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	state State
	err   error
}

type tickResult struct {
	snap    snapshot.Snapshot
	elapsed time.Duration
	err     error
}

func newRun(r *Runner, opts Options, onDone func(error)) *Run {
	id := r.newID()
	base := r.logger.WithRun(id)

	run := &Run{
		id:       id,
		opts:     opts,
		engine:   stability.New(opts.Resources, opts.Reverse),
		recorder: r.recorder,
		progress: logging.NewNop(),
		trace:    logging.NewNop(),
		onDone:   onDone,
		done:     make(chan struct{}),
	}
	if opts.Log {
		run.progress = base
	}
	if opts.Verbose {
		run.trace = base.WithMinLevel(slog.LevelDebug)
	}

	collectorOpts := []snapshot.CollectorOption{
		snapshot.WithConcurrency(r.concurrency),
		snapshot.WithProbeHook(func(_ string, res probe.Result) {
			run.recorder.ObserveProbe(res.Available())
		}),
	}
	if run.trace.DebugEnabled() {
		collectorOpts = append(collectorOpts, snapshot.WithProbeHook(run.traceProbe))
	}
	run.collector = snapshot.NewCollector(r.prober, collectorOpts...)
	return run
}

// ID returns the run identifier used to tag log lines.
func (r *Run) ID() string {
	return r.id
}

// Options returns the effective options after normalization.
func (r *Run) Options() Options {
	return r.opts
}

// Done is closed once the run reached a terminal state and released its
// timers and in-flight probes.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Err returns the terminal error. It is nil while running and on success.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// State returns the current lifecycle state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Stop ends a running run with a canceled error. It is a no-op once the
// run is terminal. Stop does not wait; use Done for that.
func (r *Run) Stop() {
	r.cancel(ErrStopped)
}

func (r *Run) start(parent context.Context) {
	ctx, cancel := context.WithCancelCause(parent)
	r.cancel = cancel
	r.started = time.Now()

	r.trace.Debug("state transition", "to", StateRunning.String(),
		"delay", r.opts.Delay, "interval", r.opts.Interval,
		"window", r.opts.Window, "timeout", FormatTimeout(r.opts.Timeout), "reverse", r.opts.Reverse)

	go func() {
		err := r.poll(ctx)
		// Stop in-flight probes before reporting: nothing runs after finish.
		cancel(context.Canceled)
		r.inflight.Wait()
		r.finish(err)
	}()
}

// poll drives ticks, window closes and the timeout guard until one of them
// produces a terminal outcome. All timers are stopped when it returns.
func (r *Run) poll(ctx context.Context) error {
	tick := time.NewTimer(r.opts.Delay)
	defer tick.Stop()
	tickC := tick.C

	var timeoutC <-chan time.Time
	if r.opts.HasTimeout() {
		timeout := time.NewTimer(r.opts.Timeout)
		defer timeout.Stop()
		timeoutC = timeout.C
	}

	var window *time.Timer
	var windowC <-chan time.Time
	defer func() {
		if window != nil {
			window.Stop()
		}
	}()

	results := make(chan tickResult, 1)

	for {
		select {
		case <-ctx.Done():
			return core.ErrCanceled(context.Cause(ctx))

		case <-timeoutC:
			return r.timedOut()

		case <-tickC:
			tickC = nil
			r.inflight.Add(1)
			go r.collect(ctx, results)

		case res := <-results:
			if res.err != nil {
				// Only cancellation aborts a collection; ctx.Done wins next.
				continue
			}
			if r.observe(res) {
				window = time.NewTimer(r.opts.Window)
				windowC = window.C
			}
			next := r.opts.Interval - res.elapsed
			if next < 0 {
				next = 0
			}
			tick.Reset(next)
			tickC = tick.C

		case <-windowC:
			if r.closeWindow() {
				r.progress.Info("all resources settled",
					"resources", strings.Join(r.opts.Resources, ", "))
				return nil
			}
			window.Reset(r.opts.Window)
		}
	}
}

func (r *Run) collect(ctx context.Context, out chan<- tickResult) {
	defer r.inflight.Done()
	start := time.Now()
	snap, err := r.collector.Collect(ctx, r.opts.Resources)
	// Buffered with one slot and one collection at a time: never blocks.
	out <- tickResult{snap: snap, elapsed: time.Since(start), err: err}
}

// observe feeds one snapshot to the engine and reports whether it was the
// baseline, which opens the first window.
func (r *Run) observe(res tickResult) bool {
	r.recorder.ObserveTick(res.elapsed)
	obs := r.engine.Observe(res.snap)
	if obs.Distinct {
		r.recorder.ObserveDistinct()
	}

	r.trace.Debug("snapshot",
		"values", res.snap.Format(r.opts.Resources),
		"distinct", obs.Distinct,
		"baseline", obs.Baseline,
		"elapsed", res.elapsed)

	if obs.WaitingChanged {
		r.progress.Info("waiting for resources",
			"waiting_for", strings.Join(obs.NotReady, ", "))
	}
	return obs.Baseline
}

func (r *Run) closeWindow() bool {
	changes := r.engine.PendingChanges()
	verdict := r.engine.CloseWindow()
	r.recorder.ObserveWindow(verdict.String())
	r.trace.Debug("window closed", "verdict", verdict.String(), "changes", changes)
	return verdict == stability.VerdictSettled
}

func (r *Run) timedOut() error {
	waiting := r.engine.Waiting()
	r.progress.Error("timed out; exiting with error",
		"waiting_for", strings.Join(waiting, ", "),
		"timeout", r.opts.Timeout)
	return core.ErrTimeout(waiting)
}

// finish is the single terminal transition. The first call wins; later
// calls are no-ops.
func (r *Run) finish(err error) {
	r.once.Do(func() {
		state := StateSucceeded
		outcome := metrics.OutcomeSucceeded
		if err != nil {
			state = StateFailed
			outcome = metrics.OutcomeTimeout
			if core.IsCategory(err, core.ErrCatCanceled) {
				outcome = metrics.OutcomeCanceled
				r.progress.Warn("wait canceled", "cause", errors.Unwrap(err))
			}
		}

		r.mu.Lock()
		r.state = state
		r.err = err
		r.mu.Unlock()

		r.recorder.ObserveRun(outcome, time.Since(r.started))
		r.trace.Debug("state transition", "from", StateRunning.String(), "to", state.String())

		close(r.done)
		if r.onDone != nil {
			r.onDone(err)
		}
	})
}

func (r *Run) traceProbe(resource string, res probe.Result) {
	log := r.trace.WithResource(resource)
	if res.Info == nil {
		log.Debug("probe", "size", res.Size)
		return
	}
	log.Debug("probe",
		"size", res.Size,
		"mode", res.Info.Mode().String(),
		"mod_time", res.Info.ModTime())
}

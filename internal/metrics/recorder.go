// Package metrics records per-run polling statistics as Prometheus metrics
// and exports them for the node_exporter textfile collector.
package metrics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/hugo-lorenzo-mato/waitfile/internal/fsutil"
)

const namespace = "waitfile"

// Run outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeTimeout   = "timeout"
	OutcomeCanceled  = "canceled"
	OutcomeInvalid   = "invalid"
)

// Recorder holds the metrics of a single process. Each Recorder owns its
// registry so independent runs (and tests) never collide on registration.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	probes       *prometheus.CounterVec
	distinct     prometheus.Counter
	windows      *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runDuration  prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total polling ticks that produced a snapshot",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent probing every resource in one tick",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Total resource probes by result",
		}, []string{"result"}),
		distinct: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distinct_snapshots_total",
			Help:      "Snapshots that differed from the preceding one",
		}),
		windows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Closed stability windows by verdict",
		}, []string{"verdict"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome",
		}, []string{"outcome"}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the most recently finished run",
		}),
	}
}

// ObserveTick records one completed collection round.
func (r *Recorder) ObserveTick(d time.Duration) {
	if r == nil {
		return
	}
	r.ticks.Inc()
	r.tickDuration.Observe(d.Seconds())
}

// ObserveProbe records a single probe result.
func (r *Recorder) ObserveProbe(available bool) {
	if r == nil {
		return
	}
	result := "absent"
	if available {
		result = "present"
	}
	r.probes.WithLabelValues(result).Inc()
}

// ObserveDistinct records a snapshot that survived deduplication.
func (r *Recorder) ObserveDistinct() {
	if r == nil {
		return
	}
	r.distinct.Inc()
}

// ObserveWindow records a closed window verdict.
func (r *Recorder) ObserveWindow(verdict string) {
	if r == nil {
		return
	}
	r.windows.WithLabelValues(verdict).Inc()
}

// ObserveRun records the terminal outcome of a run.
func (r *Recorder) ObserveRun(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.runDuration.Set(d.Seconds())
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Encode renders every metric in the Prometheus text exposition format.
func (r *Recorder) Encode() ([]byte, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}

// WriteTextfile atomically replaces path with the current metrics.
func (r *Recorder) WriteTextfile(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

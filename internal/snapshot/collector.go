package snapshot

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
)

// DefaultConcurrency is the number of probes a Collector runs at once.
const DefaultConcurrency = 4

// ProbeHook observes each probe result once a collection round completes.
// Hooks run sequentially, in configured resource order.
type ProbeHook func(resource string, res probe.Result)

// Collector probes every configured resource and merges the results.
type Collector struct {
	prober      probe.Prober
	concurrency int
	hooks       []ProbeHook
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithConcurrency bounds the number of in-flight probes. Values < 1 mean 1.
func WithConcurrency(n int) CollectorOption {
	return func(c *Collector) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

// WithProbeHook registers a hook called for every probe result.
func WithProbeHook(hook ProbeHook) CollectorOption {
	return func(c *Collector) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// NewCollector creates a Collector around prober.
func NewCollector(prober probe.Prober, opts ...CollectorOption) *Collector {
	c := &Collector{
		prober:      prober,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect probes resources and returns the snapshot for this round.
// The snapshot is only returned once every probe has finished. If ctx is
// canceled mid-round the partial results are discarded and ctx.Err() returned.
func (c *Collector) Collect(ctx context.Context, resources []string) (Snapshot, error) {
	results := make([]probe.Result, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, resource := range resources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.prober.Probe(gctx, resource)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := make(Snapshot, len(resources))
	for i, resource := range resources {
		snap[resource] = results[i].Size
		for _, hook := range c.hooks {
			hook(resource, results[i])
		}
	}
	return snap, nil
}

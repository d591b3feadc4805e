// Package ensemble runs independent replicate simulations of one
// configuration in parallel and collects their abundance distributions.
//
// Replicate i draws from its own PartitionedRNG subsystem, so the collected
// results depend only on the seed, never on worker count or scheduling.
// Importing this package registers the vectorized engine.
package ensemble

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/neutral-sim/neutral-sim/sim"
	_ "github.com/neutral-sim/neutral-sim/sim/coalescent"
	"github.com/neutral-sim/neutral-sim/sim/sad"
	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// Options controls replicate execution.
type Options struct {
	Replicates int              // number of independent runs (>= 1)
	Workers    int              // concurrent runs; 0 = GOMAXPROCS
	Seed       int64            // master seed
	TraceLevel trace.TraceLevel // per-replicate event tracing for exact engines
}

// Replicate is the outcome of one run.
type Replicate struct {
	Index      int                 `json:"index"`
	Abundances []int               `json:"abundances"`
	Summary    sad.Summary         `json:"summary"`
	Trace      *trace.TraceSummary `json:"trace,omitempty"`
}

// Result holds every replicate of a configuration, ordered by index.
type Result struct {
	Config     sim.SimConfig
	Seed       int64
	Replicates []Replicate
	Aggregate  sad.Aggregate
}

// ReplicateSource returns the random source for replicate i. Replicate 0
// uses the engine subsystem so a single-replicate ensemble reproduces
// sim.NewSeededSource(seed).
func ReplicateSource(rng *sim.PartitionedRNG, i int) *sim.Source {
	if i == 0 {
		return rng.ForSubsystem(sim.SubsystemEngine)
	}
	return rng.ForSubsystem(sim.SubsystemReplicate(i))
}

// Run executes opts.Replicates simulations of cfg. It fails fast on invalid
// parameters, and stops launching replicates once ctx is cancelled.
func Run(ctx context.Context, cfg sim.SimConfig, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Replicates < 1 {
		return nil, fmt.Errorf("%w: replicates must be at least 1, got %d", sim.ErrInvalidParameter, opts.Replicates)
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return nil, fmt.Errorf("%w: unknown trace level %q", sim.ErrInvalidParameter, opts.TraceLevel)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Sources are derived up front: PartitionedRNG is not safe for concurrent use.
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed))
	sources := make([]*sim.Source, opts.Replicates)
	for i := range sources {
		sources[i] = ReplicateSource(rng, i)
	}

	logrus.Infof("Running %d replicate(s) of %s: J=%d theta=%g tau=%g lambda=%g workers=%d seed=%d",
		opts.Replicates, cfg.Model, cfg.Individuals, cfg.Theta, cfg.Tau, cfg.EffectiveLambda(), workers, opts.Seed)

	replicates := make([]Replicate, opts.Replicates)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range replicates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr := trace.New(opts.TraceLevel)
			abundances, err := sim.SimulateTraced(cfg, sources[i], tr)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", i, err)
			}
			replicates[i] = Replicate{
				Index:      i,
				Abundances: abundances,
				Summary:    sad.Summarize(abundances),
			}
			if tr != nil {
				replicates[i].Trace = trace.Summarize(tr)
			}
			logrus.Debugf("replicate %d: %d species", i, replicates[i].Summary.Richness)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries := make([]sad.Summary, len(replicates))
	for i, r := range replicates {
		summaries[i] = r.Summary
	}
	return &Result{
		Config:     cfg,
		Seed:       opts.Seed,
		Replicates: replicates,
		Aggregate:  sad.AggregateSummaries(summaries),
	}, nil
}

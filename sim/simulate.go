package sim

import (
	"fmt"

	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// SimulateVectorizedFunc runs the vectorized coalescent pipeline. It is
// registered by sim/coalescent's init(), which breaks the import cycle
// between sim/ (parameter owner) and sim/coalescent/ (implementation).
// Production code imports sim/coalescent (directly or via sim/ensemble).
var SimulateVectorizedFunc func(rng RandomSource, j int, lambda float64) ([]int, error)

// Simulate runs the engine selected by cfg.Model and returns species abundances.
func Simulate(cfg SimConfig, rng RandomSource) ([]int, error) {
	return SimulateTraced(cfg, rng, nil)
}

// SimulateTraced is Simulate with an optional event trace. The vectorized
// engine has no per-event loop and records nothing.
func SimulateTraced(cfg SimConfig, rng RandomSource, tr *trace.SimulationTrace) ([]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Model {
	case ModelPointMutation:
		return SimulatePointMutationTraced(rng, cfg.Theta, cfg.Individuals, tr)
	case ModelProtracted:
		return SimulateProtractedTraced(rng, cfg.Theta, cfg.Individuals, cfg.Tau, tr)
	case ModelVectorized:
		if SimulateVectorizedFunc == nil {
			panic("SimulateVectorizedFunc not registered: import sim/coalescent to register it")
		}
		return SimulateVectorizedFunc(rng, cfg.Individuals, cfg.EffectiveLambda())
	default:
		return nil, fmt.Errorf("%w: unknown model %q", ErrInvalidParameter, cfg.Model)
	}
}

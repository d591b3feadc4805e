package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// SimulateProtracted runs the exact protracted-speciation model: a lineage can
// only complete speciation if at least tau/j coalescent time units pass before
// the next coalescence.
func SimulateProtracted(rng RandomSource, theta float64, j int, tau float64) ([]int, error) {
	return SimulateProtractedTraced(rng, theta, j, tau, nil)
}

// SimulateProtractedTraced is SimulateProtracted with an optional event trace.
//
// Per iteration the waiting time to the next coalescence is drawn as
// Exponential(K*(K-1)). If it is shorter than tau/j, an unordered pair
// coalesces. Otherwise the point-mutation decision runs on a fresh uniform
// draw, independent of the one consumed by the waiting time.
func SimulateProtractedTraced(rng RandomSource, theta float64, j int, tau float64, tr *trace.SimulationTrace) ([]int, error) {
	if err := validateTheta(theta); err != nil {
		return nil, err
	}
	if err := validateIndividuals(j); err != nil {
		return nil, err
	}
	if err := validateTau(tau); err != nil {
		return nil, err
	}

	taup := tau / float64(j)
	pool := NewLineagePool(j)
	species := make([]int, 0)
	protracted := 0
	for step := 0; pool.Len() > 0; step++ {
		k := pool.Len()
		t := math.Inf(1)
		if k > 1 {
			t = rng.Exponential(float64(k * (k - 1)))
		}

		if taup > t {
			pair := rng.SampleWithoutReplacement(k, 2)
			merged := pool.Merge(pair[0], pair[1])
			tr.Record(trace.EventRecord{Step: step, Kind: trace.KindProtractedCoalescence, Lineages: k, Abundance: pool.Abundance(merged)})
			protracted++
			continue
		}
		species = pointMutationEvent(rng, pool, theta, step, tr, species)
	}

	logrus.Debugf("protracted: J=%d theta=%g tau=%g -> %d species (%d forced coalescences)",
		j, theta, tau, len(species), protracted)
	return species, nil
}

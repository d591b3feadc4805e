package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// SimulatePointMutation runs the exact point-mutation speciation model on a
// metacommunity of j individuals and returns the species abundances.
func SimulatePointMutation(rng RandomSource, theta float64, j int) ([]int, error) {
	return SimulatePointMutationTraced(rng, theta, j, nil)
}

// SimulatePointMutationTraced is SimulatePointMutation with an optional event
// trace (nil disables recording).
//
// Each iteration removes exactly one lineage, so the run performs exactly j
// events. With K lineages left the speciation probability is
// theta/(theta+K-1); at K == 1 it is 1 and the last lineage always speciates.
func SimulatePointMutationTraced(rng RandomSource, theta float64, j int, tr *trace.SimulationTrace) ([]int, error) {
	if err := validateTheta(theta); err != nil {
		return nil, err
	}
	if err := validateIndividuals(j); err != nil {
		return nil, err
	}

	pool := NewLineagePool(j)
	species := make([]int, 0)
	for step := 0; pool.Len() > 0; step++ {
		species = pointMutationEvent(rng, pool, theta, step, tr, species)
	}

	logrus.Debugf("point-mutation: J=%d theta=%g -> %d species", j, theta, len(species))
	return species, nil
}

// pointMutationEvent performs one speciation-or-coalescence decision on pool
// and returns species with any emitted abundance appended.
func pointMutationEvent(rng RandomSource, pool *LineagePool, theta float64, step int, tr *trace.SimulationTrace, species []int) []int {
	k := pool.Len()
	r := rng.Uniform()
	i := rng.IntN(k)

	if r <= theta/(theta+float64(k-1)) {
		a := pool.Extract(i)
		tr.Record(trace.EventRecord{Step: step, Kind: trace.KindSpeciation, Lineages: k, Abundance: a})
		return append(species, a)
	}

	// j uniform over the k-1 lineages other than i
	other := rng.IntN(k - 1)
	if other >= i {
		other++
	}
	merged := pool.Merge(i, other)
	tr.Record(trace.EventRecord{Step: step, Kind: trace.KindCoalescence, Lineages: k, Abundance: pool.Abundance(merged)})
	return species
}

package coalescent

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/neutral-sim/neutral-sim/sim"
)

// SimulateVectorized runs the full vectorized pipeline on j individuals:
// sojourn sampling, event placement and partition building.
func SimulateVectorized(rng sim.RandomSource, j int, lambda float64) ([]int, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return nil, fmt.Errorf("%w: lambda must be a finite positive number, got %v", sim.ErrInvalidParameter, lambda)
	}
	if j < 1 {
		return nil, fmt.Errorf("%w: J must be at least 1, got %d", sim.ErrInvalidParameter, j)
	}
	if j == 1 {
		return []int{1}, nil
	}

	sojourns, err := SampleSojourns(rng, j)
	if err != nil {
		return nil, err
	}
	placement, err := PlaceEvents(rng, sojourns, j, lambda)
	if err != nil {
		return nil, err
	}
	species, err := BuildAbundances(rng, sojourns, placement, j)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("vectorized: J=%d lambda=%g tmrca=%g -> %d species", j, lambda, sojourns.TMRCA(), len(species))
	return species, nil
}

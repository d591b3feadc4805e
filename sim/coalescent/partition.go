package coalescent

import (
	"fmt"

	"github.com/neutral-sim/neutral-sim/sim"
)

// BuildAbundances cuts the genealogy at every flagged edge and returns the
// leaf count of each piece that still holds leaves.
//
// Intervals are walked from k = J down to 2. Inside interval k each flagged
// slot is closed: its leaves are emitted as one species and the slot carries
// on with zero leaves, so nothing it held reaches the root. The interval
// then ends with the coalescence of a uniformly drawn pair. Whatever
// reaches the root forms the last species.
//
// The sojourn times do not shape the topology; they are taken so the
// placement and the genealogy are checked against one J.
func BuildAbundances(rng sim.RandomSource, sojourns Sojourns, placement *Placement, j int) ([]int, error) {
	if err := validateSojourns(sojourns, j); err != nil {
		return nil, err
	}
	if placement == nil {
		return nil, fmt.Errorf("%w: nil placement", sim.ErrInvalidParameter)
	}
	if !placement.fitsUniverse(j) {
		return nil, fmt.Errorf("%w: placement references edges outside the %d-edge genealogy for J=%d",
			sim.ErrInvalidParameter, EdgeCount(j), j)
	}

	marks := placement.edges.ToArray()
	next := len(marks) - 1
	pool := sim.NewLineagePool(j)
	species := make([]int, 0, placement.Len()+1)

	for k := j; k >= 2; k-- {
		base := edgeBase(k)
		for ; next >= 0 && marks[next] >= base; next-- {
			if a := pool.Close(int(marks[next] - base)); a > 0 {
				species = append(species, a)
			}
		}
		pair := rng.SampleWithoutReplacement(k, 2)
		pool.Merge(pair[0], pair[1])
	}
	if a := pool.Abundance(0); a > 0 {
		species = append(species, a)
	}
	return species, nil
}

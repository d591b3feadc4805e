package coalescent

import (
	"fmt"

	"github.com/neutral-sim/neutral-sim/sim"
)

// Sojourns holds the waiting times of a standard coalescent on J leaves.
// Index 0 is the interval with J lineages, the last index the interval with
// 2 lineages; len(s) == J-1.
type Sojourns []float64

// Individuals returns J, the number of leaves the vector was drawn for.
func (s Sojourns) Individuals() int {
	return len(s) + 1
}

// At returns the sojourn of the interval with k lineages (2 <= k <= J).
func (s Sojourns) At(k int) float64 {
	return s[len(s)+1-k]
}

// TMRCA returns the time to the most recent common ancestor.
func (s Sojourns) TMRCA() float64 {
	total := 0.0
	for _, t := range s {
		total += t
	}
	return total
}

// TotalBranchLength returns Σ k * sojourn(k), the summed length of every
// edge in the genealogy.
func (s Sojourns) TotalBranchLength() float64 {
	j := s.Individuals()
	total := 0.0
	for i, t := range s {
		total += float64(j-i) * t
	}
	return total
}

// SampleSojourns draws the J-1 sojourn times of a coalescent without
// speciation. The interval with k lineages is Exponential(k(k-1)/2).
func SampleSojourns(rng sim.RandomSource, j int) (Sojourns, error) {
	if j < 1 {
		return nil, fmt.Errorf("%w: J must be at least 1, got %d", sim.ErrInvalidParameter, j)
	}
	s := make(Sojourns, j-1)
	for i := range s {
		k := j - i
		s[i] = rng.Exponential(float64(k*(k-1)) / 2)
	}
	return s, nil
}

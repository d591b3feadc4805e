// Package sad summarizes species abundance distributions produced by the
// simulation engines: richness and diversity indices, rank-abundance curves,
// Preston octaves, and aggregates across replicate runs.
package sad

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a single abundance distribution.
type Summary struct {
	Richness     int     `json:"richness"`
	Individuals  int     `json:"individuals"`
	Singletons   int     `json:"singletons"`
	Doubletons   int     `json:"doubletons"`
	MaxAbundance int     `json:"max_abundance"`
	Shannon      float64 `json:"shannon"`       // H' = -Σ p ln p
	Simpson      float64 `json:"simpson"`       // 1 - Σ p²
	BergerParker float64 `json:"berger_parker"` // max abundance / individuals
}

// Summarize computes Summary for abundances. Non-positive entries are ignored.
// Empty input returns the zero Summary.
func Summarize(abundances []int) Summary {
	var s Summary
	counts := make([]float64, 0, len(abundances))
	for _, a := range abundances {
		if a <= 0 {
			continue
		}
		s.Richness++
		s.Individuals += a
		switch a {
		case 1:
			s.Singletons++
		case 2:
			s.Doubletons++
		}
		if a > s.MaxAbundance {
			s.MaxAbundance = a
		}
		counts = append(counts, float64(a))
	}
	if s.Individuals == 0 {
		return s
	}

	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/float64(s.Individuals), counts)
	s.Shannon = stat.Entropy(p)
	s.Simpson = 1 - floats.Dot(p, p)
	s.BergerParker = float64(s.MaxAbundance) / float64(s.Individuals)
	return s
}

// RankAbundance returns the positive abundances sorted from most to least abundant.
func RankAbundance(abundances []int) []int {
	out := make([]int, 0, len(abundances))
	for _, a := range abundances {
		if a > 0 {
			out = append(out, a)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// PrestonOctaves bins abundances by log2: octave n counts species with
// abundance in [2^n, 2^(n+1)). The slice runs up to the highest occupied octave.
func PrestonOctaves(abundances []int) []int {
	var octaves []int
	for _, a := range abundances {
		if a <= 0 {
			continue
		}
		n := int(math.Floor(math.Log2(float64(a))))
		// guard against Log2 rounding just below an exact power of two
		if 1<<(n+1) <= a {
			n++
		}
		for len(octaves) <= n {
			octaves = append(octaves, 0)
		}
		octaves[n]++
	}
	return octaves
}

package coalescent

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/sirupsen/logrus"

	"github.com/neutral-sim/neutral-sim/sim"
)

// Placement is the set of edges carrying at least one speciation event.
// Only existence matters: the event nearest the tips bounds the species, so
// repeated draws on one edge collapse to a single membership flag.
type Placement struct {
	edges *roaring64.Bitmap
	draws int
}

// NewPlacement returns an empty placement.
func NewPlacement() *Placement {
	return &Placement{edges: roaring64.New()}
}

// Add flags e as bearing a speciation event.
func (p *Placement) Add(e Edge) {
	p.draws++
	p.edges.Add(e.ID())
}

// Contains reports whether e is flagged.
func (p *Placement) Contains(e Edge) bool {
	return p.edges.Contains(e.ID())
}

// Len returns the number of distinct flagged edges.
func (p *Placement) Len() int {
	return int(p.edges.GetCardinality())
}

// Draws returns the number of raw draws, duplicates included.
func (p *Placement) Draws() int {
	return p.draws
}

// Edges returns the flagged edges in ascending ID order.
func (p *Placement) Edges() []Edge {
	ids := p.edges.ToArray()
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = EdgeFromID(id)
	}
	return out
}

// fitsUniverse reports whether every flagged edge exists in a genealogy on j leaves.
func (p *Placement) fitsUniverse(j int) bool {
	if p.edges.IsEmpty() {
		return true
	}
	return p.edges.Maximum() < EdgeCount(j)
}

// denseFactor bounds the expected raw draw count, relative to the number of
// edges, above which PlaceEvents flags edges one interval at a time.
const denseFactor = 4

// PlaceEvents scatters speciation events over the genealogy described by
// sojourns. The event count is Poisson with mean lambda * Σ k*sojourn(k);
// each event lands on an interval with probability proportional to
// k*sojourn(k) and on a uniform slot within it, which weights every edge by
// its own length.
//
// When the expected count is large compared with the number of edges, the
// same flag set is drawn per interval instead: an edge of length t carries at
// least one event with probability 1-exp(-lambda*t), so interval k flags a
// Binomial(k, that probability) number of distinct slots.
func PlaceEvents(rng sim.RandomSource, sojourns Sojourns, j int, lambda float64) (*Placement, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return nil, fmt.Errorf("%w: lambda must be a finite positive number, got %v", sim.ErrInvalidParameter, lambda)
	}
	if err := validateSojourns(sojourns, j); err != nil {
		return nil, err
	}

	total := lambda * sojourns.TotalBranchLength()
	var p *Placement
	if total > denseFactor*float64(EdgeCount(j)) {
		p = placeThinned(rng, sojourns, j, lambda)
	} else {
		p = placeScattered(rng, sojourns, j, total)
	}

	logrus.Debugf("placement: J=%d lambda=%g opportunity=%g draws=%d distinct=%d",
		j, lambda, total, p.Draws(), p.Len())
	return p, nil
}

func placeScattered(rng sim.RandomSource, sojourns Sojourns, j int, total float64) *Placement {
	weights := make([]float64, len(sojourns))
	for i, t := range sojourns {
		weights[i] = float64(j-i) * t
	}
	n := rng.Poisson(total)

	p := NewPlacement()
	for _, idx := range rng.SampleWeighted(weights, n) {
		k := j - idx
		p.Add(Edge{K: k, Slot: rng.IntN(k)})
	}
	return p
}

// placeThinned records one draw per flagged edge.
func placeThinned(rng sim.RandomSource, sojourns Sojourns, j int, lambda float64) *Placement {
	p := NewPlacement()
	for i, t := range sojourns {
		k := j - i
		c := rng.Binomial(k, -math.Expm1(-lambda*t))
		if c == 0 {
			continue
		}
		for _, slot := range rng.SampleWithoutReplacement(k, c) {
			p.Add(Edge{K: k, Slot: slot})
		}
	}
	return p
}

func validateSojourns(sojourns Sojourns, j int) error {
	if j < 2 {
		return fmt.Errorf("%w: J must be at least 2, got %d", sim.ErrInvalidParameter, j)
	}
	if len(sojourns) != j-1 {
		return fmt.Errorf("%w: expected %d sojourn times for J=%d, got %d", sim.ErrInvalidParameter, j-1, j, len(sojourns))
	}
	for i, t := range sojourns {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return fmt.Errorf("%w: sojourn[%d] must be a finite non-negative number, got %v", sim.ErrInvalidParameter, i, t)
		}
	}
	return nil
}

package sim

import "fmt"

// LineagePool is the set of active lineages during the backward-time walk.
// Lineages live in a dense slice; removal swaps the last lineage into the
// vacated index and truncates, so indices in [0, Len()) are always valid
// but are not stable across removals.
//
// Invariant: Sum() + (abundance emitted so far) == J.
type LineagePool struct {
	abundance []int
}

// NewLineagePool creates a pool of j lineages, each carrying one individual.
func NewLineagePool(j int) *LineagePool {
	abundance := make([]int, j)
	for i := range abundance {
		abundance[i] = 1
	}
	return &LineagePool{abundance: abundance}
}

// Len returns K, the number of active lineages.
func (p *LineagePool) Len() int {
	return len(p.abundance)
}

// Abundance returns the number of individuals descending from lineage i.
func (p *LineagePool) Abundance(i int) int {
	return p.abundance[i]
}

// Sum returns the total abundance still carried by active lineages.
func (p *LineagePool) Sum() int {
	total := 0
	for _, a := range p.abundance {
		total += a
	}
	return total
}

// Merge coalesces lineage j into lineage i. Lineage i keeps its index
// unless it was the last element, in which case it takes j's index.
// Returns the index now holding the merged lineage.
func (p *LineagePool) Merge(i, j int) int {
	if i == j {
		panic(fmt.Sprintf("LineagePool.Merge: cannot merge lineage %d with itself", i))
	}
	p.abundance[i] += p.abundance[j]
	last := len(p.abundance) - 1
	p.remove(j)
	if i == last {
		return j
	}
	return i
}

// Extract removes lineage i and returns its abundance as a finished species.
func (p *LineagePool) Extract(i int) int {
	a := p.abundance[i]
	p.remove(i)
	return a
}

// Close empties lineage i in place and returns the abundance it carried.
// The lineage stays active with zero individuals; used when the genealogy's
// shape must be preserved after a speciation cut.
func (p *LineagePool) Close(i int) int {
	a := p.abundance[i]
	p.abundance[i] = 0
	return a
}

func (p *LineagePool) remove(i int) {
	last := len(p.abundance) - 1
	p.abundance[i] = p.abundance[last]
	p.abundance = p.abundance[:last]
}

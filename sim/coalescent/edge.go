package coalescent

import "math"

// Edge identifies one lineage during one coalescent interval: Slot is the
// position (0 <= Slot < K) of that lineage among the K concurrent lineages.
type Edge struct {
	K    int
	Slot int
}

// edgeBase returns the ID of Edge{k, 0}. Intervals are laid out in
// increasing k, so interval k occupies [edgeBase(k), edgeBase(k)+k).
func edgeBase(k int) uint64 {
	return uint64(k)*uint64(k-1)/2 - 1
}

// ID maps the edge to its dense index in [0, EdgeCount(J)).
func (e Edge) ID() uint64 {
	return edgeBase(e.K) + uint64(e.Slot)
}

// EdgeFromID is the inverse of Edge.ID.
func EdgeFromID(id uint64) Edge {
	// largest k with k(k-1)/2 <= id+1
	k := int((1 + math.Sqrt(1+8*float64(id+1))) / 2)
	for k > 2 && edgeBase(k) > id {
		k--
	}
	for edgeBase(k+1) <= id {
		k++
	}
	return Edge{K: k, Slot: int(id - edgeBase(k))}
}

// EdgeCount returns Σ_{k=2..j} k, the number of edges in a genealogy on j leaves.
func EdgeCount(j int) uint64 {
	if j < 2 {
		return 0
	}
	return uint64(j)*uint64(j+1)/2 - 1
}

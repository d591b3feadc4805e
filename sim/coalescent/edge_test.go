package coalescent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeCount(t *testing.T) {
	tests := []struct {
		j    int
		want uint64
	}{
		{0, 0}, {1, 0}, {2, 2}, {3, 5}, {4, 9}, {10, 54},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EdgeCount(tt.j), "EdgeCount(%d)", tt.j)
	}
}

func TestEdge_IDIsDenseAndInvertible(t *testing.T) {
	// GIVEN every edge of a genealogy on 40 leaves, walked in increasing k
	j := 40
	next := uint64(0)
	for k := 2; k <= j; k++ {
		for slot := 0; slot < k; slot++ {
			e := Edge{K: k, Slot: slot}
			// THEN IDs are consecutive and round-trip
			assert.Equal(t, next, e.ID(), "edge %+v", e)
			assert.Equal(t, e, EdgeFromID(e.ID()))
			next++
		}
	}
	assert.Equal(t, EdgeCount(j), next)
}

func TestEdgeFromID_LargeIDs(t *testing.T) {
	for _, e := range []Edge{{K: 100000, Slot: 0}, {K: 100000, Slot: 99999}, {K: 3000001, Slot: 17}} {
		assert.Equal(t, e, EdgeFromID(e.ID()))
	}
}

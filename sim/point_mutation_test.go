package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neutral-sim/neutral-sim/sim/internal/testutil"
	"github.com/neutral-sim/neutral-sim/sim/trace"
)

// expectedSpecies returns E[S] = Σ_{k=1..J} theta/(theta+k-1) for the
// point-mutation model.
func expectedSpecies(theta float64, j int) float64 {
	total := 0.0
	for k := 1; k <= j; k++ {
		total += theta / (theta + float64(k-1))
	}
	return total
}

func meanSpecies(t *testing.T, reps int, run func(src RandomSource) ([]int, error)) float64 {
	t.Helper()
	src := NewSeededSource(42)
	total := 0
	for i := 0; i < reps; i++ {
		species, err := run(src)
		require.NoError(t, err)
		total += len(species)
	}
	return float64(total) / float64(reps)
}

func TestSimulatePointMutation_ScriptedTwoCoalescencesTwoSpeciations(t *testing.T) {
	// GIVEN J=4 and draws forcing coalescence, coalescence, speciation, speciation
	src := &testutil.ScriptedSource{
		Uniforms: []float64{0.9, 0.9, 0.1, 0.5},
		// step 1: i=0, other=0→1; step 2: i=1, other=1→2; steps 3-4: i=0
		Ints: []int{0, 0, 1, 1, 0, 0},
	}

	// WHEN the point-mutation engine runs
	species, err := SimulatePointMutation(src, 1.0, 4)

	// THEN two species of abundance 2 are emitted
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 2}, species)
	assert.Empty(t, src.Uniforms, "every scripted uniform must be consumed")
	assert.Empty(t, src.Ints, "every scripted index must be consumed")
}

func TestSimulatePointMutation_MassConservation(t *testing.T) {
	src := NewSeededSource(42)
	for _, tc := range []struct {
		theta float64
		j     int
	}{
		{0.1, 1}, {0.1, 50}, {1, 100}, {10, 500}, {1000, 30},
	} {
		species, err := SimulatePointMutation(src, tc.theta, tc.j)
		require.NoError(t, err)
		assert.Equal(t, tc.j, testutil.Sum(species), "theta=%g J=%d", tc.theta, tc.j)
		for _, a := range species {
			assert.Positive(t, a)
		}
	}
}

func TestSimulatePointMutation_ExactlyJEvents(t *testing.T) {
	// GIVEN an events-level trace
	tr := trace.New(trace.TraceLevelEvents)

	// WHEN J=200 individuals are simulated
	species, err := SimulatePointMutationTraced(NewSeededSource(3), 5, 200, tr)
	require.NoError(t, err)

	// THEN exactly J events happen and speciations match emitted species
	s := trace.Summarize(tr)
	assert.Equal(t, 200, s.TotalEvents)
	assert.Equal(t, len(species), s.Speciations)
	assert.Equal(t, 200-len(species), s.Coalescences)

	// AND the final event is always a speciation of the last lineage
	last := tr.Events[len(tr.Events)-1]
	assert.Equal(t, trace.KindSpeciation, last.Kind)
	assert.Equal(t, 1, last.Lineages)
}

func TestSimulatePointMutation_SingleIndividual(t *testing.T) {
	species, err := SimulatePointMutation(NewSeededSource(1), 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, species)
}

func TestSimulatePointMutation_InvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		theta float64
		j     int
	}{
		{"zero theta", 0, 10},
		{"negative theta", -1, 10},
		{"NaN theta", math.NaN(), 10},
		{"infinite theta", math.Inf(1), 10},
		{"zero J", 1, 0},
		{"negative J", 1, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &testutil.ScriptedSource{}
			_, err := SimulatePointMutation(src, tt.theta, tt.j)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
			assert.Empty(t, src.Calls, "no draw may happen before validation")
		})
	}
}

func TestSimulatePointMutation_MeanSpeciesMatchesEwens(t *testing.T) {
	theta, j := 5.0, 50
	got := meanSpecies(t, 2000, func(src RandomSource) ([]int, error) {
		return SimulatePointMutation(src, theta, j)
	})
	want := expectedSpecies(theta, j)
	if math.Abs(got-want)/want > 0.05 {
		t.Errorf("mean species = %.3f, want ≈ %.3f (within 5%%)", got, want)
	}
}

func TestSimulatePointMutation_ThetaMonotonic(t *testing.T) {
	// GIVEN J fixed
	j := 20

	// WHEN theta is tiny, moderate and huge
	low := meanSpecies(t, 500, func(src RandomSource) ([]int, error) { return SimulatePointMutation(src, 0.01, j) })
	mid := meanSpecies(t, 500, func(src RandomSource) ([]int, error) { return SimulatePointMutation(src, 2, j) })
	high := meanSpecies(t, 500, func(src RandomSource) ([]int, error) { return SimulatePointMutation(src, 1000, j) })

	// THEN mean richness rises from ≈1 towards J
	assert.Less(t, low, mid)
	assert.Less(t, mid, high)
	assert.InDelta(t, 1.0, low, 0.1)
	assert.InDelta(t, float64(j), high, 0.5)
}

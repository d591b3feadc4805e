package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// === RandomSource ===

// RandomSource is the set of named draws the simulation engines consume.
// Engines never own their entropy; callers hand them a source (usually a
// *Source from PartitionedRNG) so that a run is reproducible from its seed.
type RandomSource interface {
	// Uniform returns a draw from U[0, 1).
	Uniform() float64
	// IntN returns a uniform integer in [0, n). n must be > 0.
	IntN(n int) int
	// Exponential returns a draw with the given rate (mean 1/rate).
	Exponential(rate float64) float64
	// Poisson returns a draw with the given mean. mean <= 0 returns 0.
	Poisson(mean float64) int
	// Binomial returns the number of successes in n trials with success
	// probability p.
	Binomial(n int, p float64) int
	// SampleWithoutReplacement returns k distinct integers from [0, n).
	SampleWithoutReplacement(n, k int) []int
	// SampleWeighted returns k indices into weights, drawn with replacement
	// with probability proportional to weight.
	SampleWeighted(weights []float64, k int) []int
}

// Source implements RandomSource on top of math/rand/v2 and gonum's
// distribution samplers.
//
// Thread-safety: NOT thread-safe. One Source per simulation run.
type Source struct {
	rng *rand.Rand
}

// NewSource wraps rng. rng must not be shared with another goroutine.
func NewSource(rng *rand.Rand) *Source {
	return &Source{rng: rng}
}

// NewSeededSource returns a Source seeded directly from seed.
func NewSeededSource(seed int64) *Source {
	return NewSource(newRandFromSeed(seed))
}

func (s *Source) Uniform() float64 {
	return s.rng.Float64()
}

func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

func (s *Source) Exponential(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return distuv.Exponential{Rate: rate, Src: s.rng}.Rand()
}

func (s *Source) Poisson(mean float64) int {
	if mean <= 0 {
		return 0
	}
	v := distuv.Poisson{Lambda: mean, Src: s.rng}.Rand()
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}

func (s *Source) Binomial(n int, p float64) int {
	switch {
	case n <= 0 || p <= 0:
		return 0
	case p >= 1:
		return n
	}
	return int(distuv.Binomial{N: float64(n), P: p, Src: s.rng}.Rand())
}

func (s *Source) SampleWithoutReplacement(n, k int) []int {
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, n, s.rng)
	return idxs
}

func (s *Source) SampleWeighted(weights []float64, k int) []int {
	if k <= 0 {
		return nil
	}
	cat := distuv.NewCategorical(weights, s.rng)
	out := make([]int, k)
	for i := range out {
		out[i] = int(cat.Rand())
	}
	return out
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce identical abundances.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemEngine is the RNG subsystem for a single-run simulation.
	// Uses master seed directly, so `run --replicates 1` matches NewSeededSource(seed).
	SubsystemEngine = "engine"
)

// SubsystemReplicate returns the subsystem name for replicate N.
func SubsystemReplicate(id int) string {
	return fmt.Sprintf("replicate_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random sources per subsystem.
//
// Derivation formula:
//   - For SubsystemEngine: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Derive all sources from one goroutine,
// then hand each to its own worker.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*Source
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*Source),
	}
}

// ForSubsystem returns a deterministically-seeded source for the named subsystem.
// The same subsystem name always returns the same *Source instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *Source {
	if src, ok := p.subsystems[name]; ok {
		return src
	}

	derivedSeed := int64(p.key)
	if name != SubsystemEngine {
		derivedSeed ^= fnv1a64(name)
	}

	src := NewSeededSource(derivedSeed)
	p.subsystems[name] = src
	return src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// newRandFromSeed builds a PCG generator; the second PCG word is a fixed
// odd constant so a single int64 seed fully determines the stream.
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

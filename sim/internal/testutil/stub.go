// Package testutil provides shared test infrastructure for the neutral-sim
// engines: a scripted random source for exact scenarios and assertion helpers
// used across sim/ and its sub-packages.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// ScriptedSource is a RandomSource that replays pre-recorded draws in order.
// Running out of a scripted draw panics with the name of the missing draw,
// which surfaces as a test failure pointing at the exhausted script.
type ScriptedSource struct {
	Uniforms     []float64
	Ints         []int
	Exponentials []float64
	Poissons     []int
	Binomials    []int
	Pairs        [][]int // consumed by SampleWithoutReplacement
	Weighted     [][]int // consumed by SampleWeighted

	// Calls counts every draw served, keyed by method name.
	Calls map[string]int
}

func (s *ScriptedSource) count(name string) {
	if s.Calls == nil {
		s.Calls = make(map[string]int)
	}
	s.Calls[name]++
}

func (s *ScriptedSource) Uniform() float64 {
	s.count("Uniform")
	if len(s.Uniforms) == 0 {
		panic("ScriptedSource: Uniform script exhausted")
	}
	v := s.Uniforms[0]
	s.Uniforms = s.Uniforms[1:]
	return v
}

func (s *ScriptedSource) IntN(n int) int {
	s.count("IntN")
	if len(s.Ints) == 0 {
		panic("ScriptedSource: IntN script exhausted")
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("ScriptedSource: scripted IntN value %d outside [0, %d)", v, n))
	}
	return v
}

func (s *ScriptedSource) Exponential(rate float64) float64 {
	s.count("Exponential")
	if len(s.Exponentials) == 0 {
		panic("ScriptedSource: Exponential script exhausted")
	}
	v := s.Exponentials[0]
	s.Exponentials = s.Exponentials[1:]
	return v
}

func (s *ScriptedSource) Poisson(mean float64) int {
	s.count("Poisson")
	if len(s.Poissons) == 0 {
		panic("ScriptedSource: Poisson script exhausted")
	}
	v := s.Poissons[0]
	s.Poissons = s.Poissons[1:]
	return v
}

func (s *ScriptedSource) Binomial(n int, p float64) int {
	s.count("Binomial")
	if len(s.Binomials) == 0 {
		panic("ScriptedSource: Binomial script exhausted")
	}
	v := s.Binomials[0]
	s.Binomials = s.Binomials[1:]
	if v < 0 || v > n {
		panic(fmt.Sprintf("ScriptedSource: scripted Binomial value %d outside [0, %d]", v, n))
	}
	return v
}

func (s *ScriptedSource) SampleWithoutReplacement(n, k int) []int {
	s.count("SampleWithoutReplacement")
	if len(s.Pairs) == 0 {
		panic("ScriptedSource: SampleWithoutReplacement script exhausted")
	}
	v := s.Pairs[0]
	s.Pairs = s.Pairs[1:]
	if len(v) != k {
		panic(fmt.Sprintf("ScriptedSource: scripted sample has %d values, want %d", len(v), k))
	}
	return v
}

func (s *ScriptedSource) SampleWeighted(weights []float64, k int) []int {
	s.count("SampleWeighted")
	if k == 0 {
		return nil
	}
	if len(s.Weighted) == 0 {
		panic("ScriptedSource: SampleWeighted script exhausted")
	}
	v := s.Weighted[0]
	s.Weighted = s.Weighted[1:]
	if len(v) != k {
		panic(fmt.Sprintf("ScriptedSource: scripted weighted sample has %d values, want %d", len(v), k))
	}
	return v
}

// Sum returns the total of xs.
func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

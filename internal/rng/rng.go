// Package rng provides the uniform random sources every resolver draws from.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// Default returns the process-wide source. Safe for concurrent use.
func Default() Source { return defaultSource{} }

// Seeded is a reproducible PCG-backed source, e.g. for simulations.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec // deterministic by intent
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Fixed replays a fixed sequence of values, cycling when exhausted.
// Values are clamped into [0, 1).
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
	calls  int
}

// NewFixed returns a source that replays values in order.
// With no values it always yields 0.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return clamp(v)
}

// Calls reports how many values have been drawn.
func (f *Fixed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const maxBelowOne = 0x1.fffffffffffffp-1

func clamp(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v >= 1 {
		return maxBelowOne
	}
	return v
}

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labgen

import (
	"math"
	"math/rand/v2"
	"sync"
)

// windowPadding widens the sampling window past each reference bound, as a
// fraction of the spread, so mildly high and low results also appear.
const windowPadding = 0.1

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func() float64

// Float64 calls f.
func (f SourceFunc) Float64() float64 {
	return f()
}

// lockedSource serializes access to a non-concurrent source.
type lockedSource struct {
	mu  sync.Mutex
	src *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.src.Float64()
}

// NewSeededSource returns a reproducible Source that is safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{src: rand.New(rand.NewPCG(seed, seed))}
}

// Sampler fabricates quantitative results around a reference range.
type Sampler struct {
	src Source
}

// NewSampler returns a sampler drawing from src. A nil src uses the
// process-wide random source.
func NewSampler(src Source) *Sampler {
	if src == nil {
		src = SourceFunc(rand.Float64)
	}

	return &Sampler{src: src}
}

// Window returns the interval a value for [low, high] is drawn from. A zero
// spread falls back to max(1, low*0.1), and the lower end never goes below
// zero. Inverted bounds are not reordered.
func Window(low, high float64) (lower, upper float64) {
	spread := high - low
	if spread == 0 || math.IsNaN(spread) {
		spread = math.Max(1, low*windowPadding)
	}

	lower = math.Max(0, low-spread*windowPadding)
	upper = high + spread*windowPadding

	return lower, upper
}

// Sample draws a value from Window(low, high), rounded to one decimal place.
func (s *Sampler) Sample(low, high float64) float64 {
	lower, upper := Window(low, high)
	v := s.src.Float64()*(upper-lower) + lower

	return roundTenth(v)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

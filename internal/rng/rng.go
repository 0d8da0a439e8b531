// Package rng provides injectable, deterministic randomness.
package rng

import (
	"math/rand"
	"time"
)

// Source is the minimal randomness the engine draws from.
type Source interface {
	// Float64 returns a uniform value in [0,1).
	Float64() float64
}

// RNG wraps math/rand.Rand with position tracking.
// Position increments with every draw and is logged with the seed when an
// encounter ends.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// NewTimeSeeded returns an RNG seeded from the wall clock.
func NewTimeSeeded() *RNG {
	return NewRNG(time.Now().UnixNano())
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a value in [0,1).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Intn returns a value in [0,n). n must be positive.
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// WeightedSelect returns an index chosen by weighted random selection.
// weights must be non-empty with all positive values.
func (r *RNG) WeightedSelect(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r.pos++
	roll := r.src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

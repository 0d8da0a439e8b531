package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestRNG_FloatRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 1000; i++ {
		v := r.Intn(6)
		require.True(t, v >= 0 && v < 6, "value out of range: %d", v)
	}
}

func TestRNG_WeightedSelect_Distribution(t *testing.T) {
	r := NewRNG(12345)
	weights := []float64{70, 20, 10}
	counts := [3]int{}
	for i := 0; i < 10000; i++ {
		counts[r.WeightedSelect(weights)]++
	}
	assert.InDelta(t, 7000, counts[0], 1000)
	assert.InDelta(t, 2000, counts[1], 1000)
	assert.InDelta(t, 1000, counts[2], 800)
}

func TestRNG_Position_Tracks(t *testing.T) {
	r := NewRNG(42)
	assert.Equal(t, int64(0), r.Position())
	r.Float64()
	r.Intn(6)
	r.WeightedSelect([]float64{1, 1})
	assert.Equal(t, int64(3), r.Position())
}

func TestFixed_Cycles(t *testing.T) {
	f := NewFixed(0.1, 0.9)
	assert.Equal(t, 0.1, f.Float64())
	assert.Equal(t, 0.9, f.Float64())
	assert.Equal(t, 0.1, f.Float64())
	assert.Equal(t, 0.0, NewFixed().Float64())
}

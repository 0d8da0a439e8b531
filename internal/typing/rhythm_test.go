package typing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRhythmIdenticalIntervals(t *testing.T) {
	d := NewRhythmDetector()
	for i := 0; i < 20; i++ {
		d.Record(100)
	}
	assert.Equal(t, 1.0, d.Regularity())
	assert.Equal(t, 100.0, d.AverageInterval())
	assert.True(t, d.IsRhythmic())
}

func TestRhythmNeedsThreeSamples(t *testing.T) {
	d := NewRhythmDetector()
	d.Record(100)
	d.Record(100)
	assert.Equal(t, 0.0, d.Regularity())
	d.Record(100)
	assert.Equal(t, 1.0, d.Regularity())
}

func TestRhythmWindowEvicts(t *testing.T) {
	d := NewRhythmDetector()
	for i := 0; i < RhythmWindowSize+5; i++ {
		d.Record(float64(i))
	}
	require.Equal(t, RhythmWindowSize, d.Len())
}

func TestRhythmRegularityBounds(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	d := NewRhythmDetector()
	for i := 0; i < 500; i++ {
		var v float64
		switch i % 4 {
		case 0:
			v = 0
		case 1:
			v = r.Float64() * 5000
		case 2:
			v = 1
		default:
			v = r.Float64()
		}
		d.Record(v)
		reg := d.Regularity()
		require.GreaterOrEqual(t, reg, 0.0)
		require.LessOrEqual(t, reg, 1.0)
	}

	wild := NewRhythmDetector()
	for _, v := range []float64{1, 2000, 3, 1500, 2, 2500, 1} {
		wild.Record(v)
	}
	assert.Equal(t, 0.0, wild.Regularity())
	assert.False(t, wild.IsRhythmic())
}

func TestRhythmReset(t *testing.T) {
	d := NewRhythmDetector()
	for i := 0; i < 5; i++ {
		d.Record(80)
	}
	d.Reset()
	d.Reset()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0.0, d.Regularity())
	assert.Equal(t, 0.0, d.AverageInterval())
}

package generator

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/rng"
)

var sample = []string{"go", "rust", "keyboard", "strike", "zephyr", "quiz"}

func TestGenerateDeterministic(t *testing.T) {
	a := New(rng.NewRNG(5)).Generate(sample, Options{Count: 20, CapsPct: 0.3, PunctPct: 0.3, PunctSet: []rune(".,")})
	b := New(rng.NewRNG(5)).Generate(sample, Options{Count: 20, CapsPct: 0.3, PunctPct: 0.3, PunctSet: []rune(".,")})
	require.Len(t, a, 20)
	assert.Equal(t, a, b)
}

func TestGenerateMinLength(t *testing.T) {
	out := New(rng.NewRNG(1)).Generate(sample, Options{Count: 50, MinLength: 6})
	for _, w := range out {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(w), 6, w)
	}
}

func TestGenerateMinLengthFallsBack(t *testing.T) {
	out := New(rng.NewRNG(1)).Generate([]string{"a", "bc"}, Options{Count: 3, MinLength: 10})
	assert.Len(t, out, 3)
}

func TestGenerateWeakBias(t *testing.T) {
	weak := map[rune]struct{}{'z': {}}
	out := New(rng.NewRNG(9)).Generate(sample, Options{Count: 600, Weak: weak, WeakFactor: 10})
	withZ := 0
	for _, w := range out {
		if w == "zephyr" || w == "quiz" {
			withZ++
		}
	}
	assert.Greater(t, withZ, 300)
}

func TestGenerateReverseAndForeign(t *testing.T) {
	out := New(rng.NewRNG(2)).Generate([]string{"abc"}, Options{Count: 10, ReverseChance: 1})
	for _, w := range out {
		assert.Equal(t, "cba", w)
	}
	out = New(rng.NewRNG(2)).Generate([]string{"abc"}, Options{Count: 10, ForeignChance: 1})
	for _, w := range out {
		assert.Contains(t, archaicWords, w)
	}
}

func TestGenerateEmpty(t *testing.T) {
	assert.Nil(t, New(nil).Generate(nil, Options{Count: 3}))
	assert.Nil(t, New(nil).Generate(sample, Options{}))
}

func TestScramble(t *testing.T) {
	g := New(rng.NewRNG(4))
	assert.Equal(t, "abc", g.Scramble("abc"))
	s := g.Scramble("keyboard")
	assert.NotEqual(t, "keyboard", s)
	assert.Equal(t, byte('k'), s[0])
	assert.Equal(t, byte('d'), s[len(s)-1])
}

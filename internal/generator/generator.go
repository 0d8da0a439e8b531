// Package generator builds the word queue an encounter is typed from.
package generator

import (
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/keystrike/internal/rng"
)

// archaicWords are mixed in when the world corruption scatters language.
var archaicWords = []string{
	"thee", "thou", "hath", "doth", "wherefore", "whence", "anon", "ere",
	"forsooth", "prithee", "verily", "betwixt", "hither", "yonder", "naught",
}

// Options shapes a generated sequence.
type Options struct {
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
	// Weak biases selection toward words containing these runes.
	Weak       map[rune]struct{}
	WeakFactor float64
	// MinLength drops shorter words when enough longer ones exist.
	MinLength     int
	ReverseChance float64
	ForeignChance float64
}

// Generator produces randomized typing text from a seeded source.
type Generator struct {
	rnd *rng.RNG
}

// New returns a Generator drawing from r. A nil r is seeded from the clock.
func New(r *rng.RNG) *Generator {
	if r == nil {
		r = rng.NewTimeSeeded()
	}
	return &Generator{rnd: r}
}

// Generate selects opts.Count words and applies caps, punctuation and
// corruption rules. Selection is uniform unless weak runes are given.
func (g *Generator) Generate(words []string, opts Options) []string {
	pool := filterLength(words, opts.MinLength)
	if len(pool) == 0 || opts.Count <= 0 {
		return nil
	}
	weights := weakWeights(pool, opts.Weak, opts.WeakFactor)

	result := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		var word string
		if opts.ForeignChance > 0 && g.rnd.Float64() < opts.ForeignChance {
			word = archaicWords[g.rnd.Intn(len(archaicWords))]
		} else if weights != nil {
			word = pool[g.rnd.WeightedSelect(weights)]
		} else {
			word = pool[g.rnd.Intn(len(pool))]
		}
		if opts.ReverseChance > 0 && g.rnd.Float64() < opts.ReverseChance {
			word = reverse(word)
		}
		word = g.applyCaps(word, opts.CapsPct)
		word = g.applyPunct(word, opts.PunctPct, opts.PunctSet)
		result = append(result, word)
	}
	return result
}

// Scramble swaps two inner letters of word. Words shorter than four runes
// are returned unchanged.
func (g *Generator) Scramble(word string) string {
	runes := []rune(word)
	if len(runes) < 4 {
		return word
	}
	i := 1 + g.rnd.Intn(len(runes)-2)
	j := 1 + g.rnd.Intn(len(runes)-2)
	if i == j {
		j = 1 + (i % (len(runes) - 2))
	}
	runes[i], runes[j] = runes[j], runes[i]
	return string(runes)
}

func filterLength(words []string, minLen int) []string {
	if minLen <= 1 {
		return words
	}
	var out []string
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minLen {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return words
	}
	return out
}

func weakWeights(words []string, weak map[rune]struct{}, factor float64) []float64 {
	if len(weak) == 0 || factor <= 0 {
		return nil
	}
	weights := make([]float64, len(words))
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weak[r]; ok {
				weakCount++
			}
		}
		weights[i] = 1.0 + float64(weakCount)*factor
	}
	return weights
}

func reverse(word string) string {
	runes := []rune(word)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func (g *Generator) applyCaps(word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if g.rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (g *Generator) applyPunct(word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if g.rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[g.rnd.Intn(len(punctSet))]
	return word + string(punct)
}

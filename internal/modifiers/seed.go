package modifiers

import (
	"fmt"
	"time"

	"github.com/verte-zerg/keystrike/internal/rng"
)

// CorruptionType is how the world corruption manifests in a run. It shapes
// every typing challenge of that run.
type CorruptionType int

const (
	SemanticDecay CorruptionType = iota
	LiteralManifest
	BabelCurse
	TruthInversion
	GraphemeParasite
	LinguisticAcceleration
	corruptionCount
)

func (c CorruptionType) String() string {
	switch c {
	case SemanticDecay:
		return "The Meaningless"
	case LiteralManifest:
		return "The Manifest Word"
	case BabelCurse:
		return "The Scattering"
	case TruthInversion:
		return "The Great Lie"
	case GraphemeParasite:
		return "The Hungry Letters"
	case LinguisticAcceleration:
		return "The Drift"
	default:
		return fmt.Sprintf("corruption(%d)", int(c))
	}
}

// Description is flavor text for the corruption.
func (c CorruptionType) Description() string {
	switch c {
	case SemanticDecay:
		return "Words lose their meaning. The corruption hollows text out, leaving only shapes."
	case LiteralManifest:
		return "Every word is a spell. Mistyped words bite back."
	case BabelCurse:
		return "Only the written word, typed with precision, can bridge the gap now."
	case TruthInversion:
		return "Written lies become fact. Some words must be read backwards."
	case GraphemeParasite:
		return "The letters themselves are hungry. Type carefully."
	case LinguisticAcceleration:
		return "Language evolves a century per day. Only the fastest keep up."
	default:
		return ""
	}
}

// MutationEffect is the mechanical part of a mutation.
type MutationEffect struct {
	WPMBonus      float64
	AccuracyBonus float64
	Damage        int
	Defense       int
	XPPercent     float64
	GoldPercent   float64
	Stat          string
	StatAmount    int
}

// Mutation is a small stackable bonus rolled from the run seed.
type Mutation struct {
	Name        string
	Description string
	Effect      MutationEffect
}

var mutationTable = [...]Mutation{
	{"Quick Fingers", "Start with +5 WPM", MutationEffect{WPMBonus: 5}},
	{"Precise", "Start with +5% accuracy", MutationEffect{AccuracyBonus: 0.05}},
	{"Wealthy", "Start with +25% gold", MutationEffect{GoldPercent: 0.25}},
	{"Studious", "Gain +15% XP", MutationEffect{XPPercent: 0.15}},
	{"Battle Hardened", "+5 damage in combat", MutationEffect{Damage: 5}},
	{"Thick Skinned", "+3 defense", MutationEffect{Defense: 3}},
	{"Hardy", "+10 max HP", MutationEffect{Stat: "max_hp", StatAmount: 10}},
	{"Focused", "+5 max MP", MutationEffect{Stat: "max_mp", StatAmount: 5}},
	{"Lucky", "+3 luck", MutationEffect{Stat: "luck", StatAmount: 3}},
	{"Baklava Blessing", "A faint smell of honey and pastry follows you.", MutationEffect{}},
}

// Seed is the narrative seed of a run. The same value always yields the
// same corruption and mutations.
type Seed struct {
	Value      int64
	Corruption CorruptionType
	Mutations  []Mutation
}

// FromSeed derives the narrative seed for value.
func FromSeed(value int64) Seed {
	r := rng.NewRNG(value)
	s := Seed{
		Value:      value,
		Corruption: CorruptionType(r.Intn(int(corruptionCount))),
	}
	count := r.Intn(3) + 1
	for i := 0; i < count; i++ {
		s.Mutations = append(s.Mutations, mutationTable[r.Intn(len(mutationTable))])
	}
	return s
}

// NewSeed derives a seed from the current time.
func NewSeed() Seed {
	return FromSeed(time.Now().UnixNano())
}

// NewRun returns a Standard run carrying the seed's mutations.
func (s Seed) NewRun() *Run {
	r := NewRun()
	r.mutations = append([]Mutation(nil), s.Mutations...)
	return r
}

// Bonus sums the effect of all mutations.
func (s Seed) Bonus() MutationEffect {
	var b MutationEffect
	for _, m := range s.Mutations {
		b.WPMBonus += m.Effect.WPMBonus
		b.AccuracyBonus += m.Effect.AccuracyBonus
		b.Damage += m.Effect.Damage
		b.Defense += m.Effect.Defense
		b.XPPercent += m.Effect.XPPercent
		b.GoldPercent += m.Effect.GoldPercent
	}
	return b
}

package challenge

import (
	"math"

	"github.com/verte-zerg/keystrike/internal/modifiers"
)

const (
	defaultMinAccuracy    = 0.85
	defaultMinWPM         = 30
	decryptionMinAccuracy = 0.95
)

// Thresholds are the adjusted requirements for one attempt in a context.
type Thresholds struct {
	Context Context

	MinAccuracy    float64
	MinWPM         float64
	DamagePerError int
	// WPMScale and AccuracyScale multiply measured performance before any
	// predicate runs.
	WPMScale      float64
	AccuracyScale float64

	TargetWPM       float64
	Tolerance       float64
	NoiseThreshold  int
	LoudLetters     []rune
	OpponentWPM     float64
	PerfectRequired bool

	Specials []modifiers.SpecialEffect
}

// Modulate combines ctx with the active typing effects. It is a pure
// function of its inputs.
func Modulate(ctx Context, effects []modifiers.TypingEffect) Thresholds {
	th := Thresholds{
		Context:       ctx,
		WPMScale:      1,
		AccuracyScale: 1,
	}
	for _, e := range effects {
		if e.WPMScale > 0 {
			th.WPMScale *= e.WPMScale
		}
		if e.AccuracyScale > 0 {
			th.AccuracyScale *= e.AccuracyScale
		}
		switch s := e.Special.(type) {
		case modifiers.WPMPressure:
			th.MinWPM = math.Max(th.MinWPM, s.MinWPM)
		case modifiers.AccuracyFloor:
			th.MinAccuracy = math.Max(th.MinAccuracy, s.MinAccuracy)
		case modifiers.MistakeDamageEffect:
			th.DamagePerError += s.Damage
		}
		if e.Special != nil {
			th.Specials = append(th.Specials, e.Special)
		}
	}

	switch c := ctx.(type) {
	case Combat:
		th.MinAccuracy = math.Max(th.MinAccuracy, c.MinAccuracy)
		th.MinWPM = math.Max(th.MinWPM, c.MinWPM)
	case Dialogue:
		th.MinAccuracy = math.Max(th.MinAccuracy, c.Topic.AccuracyRequirement())
	case Ritual:
		th.TargetWPM = c.TargetWPM
		th.Tolerance = c.Tolerance
	case Decryption:
		th.MinAccuracy = math.Max(th.MinAccuracy, decryptionMinAccuracy)
	case Stealth:
		th.NoiseThreshold = c.NoiseThreshold
		th.LoudLetters = c.LoudLetters
	case Transcription:
		th.PerfectRequired = c.PerfectRequired
		th.MinAccuracy = math.Max(th.MinAccuracy, defaultMinAccuracy)
		th.MinWPM = math.Max(th.MinWPM, defaultMinWPM)
	case Race:
		th.OpponentWPM = c.OpponentWPM
	case Persuasion:
		th.MinAccuracy = math.Max(th.MinAccuracy, defaultMinAccuracy)
		th.MinWPM = math.Max(th.MinWPM, defaultMinWPM)
	}
	return th
}

// Special returns the first active special effect of type T.
func Special[T modifiers.SpecialEffect](th Thresholds) (T, bool) {
	for _, s := range th.Specials {
		if v, ok := s.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

package modifiers

import (
	"fmt"
	"time"
)

// SpecialEffect is a typing rule change carried by a TypingEffect.
type SpecialEffect interface {
	String() string
	isSpecial()
}

// ScrambleWords shuffles the letters of a word left untyped for Delay.
type ScrambleWords struct{ Delay time.Duration }

// MistakeDamageEffect hurts the player for every wrong keystroke.
type MistakeDamageEffect struct{ Damage int }

// ForeignWords mixes archaic words into prompts at Frequency.
type ForeignWords struct{ Frequency float64 }

// ReversedWords asks for some words to be typed backwards.
type ReversedWords struct{ Frequency float64 }

// FadingLetters hides letters not typed quickly enough.
type FadingLetters struct{ Rate float64 }

// WPMPressure requires a minimum speed.
type WPMPressure struct{ MinWPM float64 }

// AccuracyFloor requires a minimum accuracy.
type AccuracyFloor struct{ MinAccuracy float64 }

func (e ScrambleWords) String() string {
	return fmt.Sprintf("words scramble after %s", e.Delay)
}
func (e MistakeDamageEffect) String() string { return fmt.Sprintf("typos deal %d damage", e.Damage) }
func (e ForeignWords) String() string {
	return fmt.Sprintf("%.0f%% foreign words", e.Frequency*100)
}
func (e ReversedWords) String() string {
	return fmt.Sprintf("%.0f%% reversed words", e.Frequency*100)
}
func (e FadingLetters) String() string { return fmt.Sprintf("letters fade at %.2f", e.Rate) }
func (e WPMPressure) String() string   { return fmt.Sprintf("at least %.0f WPM", e.MinWPM) }
func (e AccuracyFloor) String() string {
	return fmt.Sprintf("at least %.0f%% accuracy", e.MinAccuracy*100)
}

func (ScrambleWords) isSpecial()       {}
func (MistakeDamageEffect) isSpecial() {}
func (ForeignWords) isSpecial()        {}
func (ReversedWords) isSpecial()       {}
func (FadingLetters) isSpecial()       {}
func (WPMPressure) isSpecial()         {}
func (AccuracyFloor) isSpecial()       {}

// TypingEffect is one source of typing adjustments. Scales multiply the
// player's measured performance; Special may be nil.
type TypingEffect struct {
	Name          string
	WPMScale      float64
	AccuracyScale float64
	Special       SpecialEffect
}

// CorruptionEffect maps a corruption type to its typing effect.
func CorruptionEffect(c CorruptionType) TypingEffect {
	e := TypingEffect{Name: c.String() + " Corruption", WPMScale: 1, AccuracyScale: 1}
	switch c {
	case SemanticDecay:
		e.WPMScale = 0.9
		e.Special = ScrambleWords{Delay: 3 * time.Second}
	case LiteralManifest:
		e.AccuracyScale = 0.95
		e.Special = MistakeDamageEffect{Damage: 2}
	case BabelCurse:
		e.WPMScale, e.AccuracyScale = 0.95, 0.95
		e.Special = ForeignWords{Frequency: 0.1}
	case TruthInversion:
		e.WPMScale = 0.85
		e.Special = ReversedWords{Frequency: 0.1}
	case GraphemeParasite:
		e.AccuracyScale = 0.9
		e.Special = FadingLetters{Rate: 0.5}
	case LinguisticAcceleration:
		e.WPMScale = 1.1
		e.Special = WPMPressure{MinWPM: 45}
	}
	return e
}

// TypingEffects aggregates the corruption and the typing modifiers of run
// into the list consumed by challenge thresholds.
func TypingEffects(c CorruptionType, run *Run) []TypingEffect {
	effects := []TypingEffect{CorruptionEffect(c)}
	if run == nil {
		return effects
	}
	for _, a := range run.TypingModifiers() {
		var special SpecialEffect
		switch m := a.Modifier.(type) {
		case SpeedPressureMod:
			special = WPMPressure{MinWPM: m.MinWPM * float64(a.Level)}
		case MistakeDamageMod:
			special = MistakeDamageEffect{Damage: m.PerError * a.Level}
		case AccuracyDemandMod:
			special = AccuracyFloor{MinAccuracy: m.Required(a.Level)}
		default:
			continue
		}
		effects = append(effects, TypingEffect{
			Name:          Name(a.Modifier),
			WPMScale:      1,
			AccuracyScale: 1,
			Special:       special,
		})
	}
	return effects
}

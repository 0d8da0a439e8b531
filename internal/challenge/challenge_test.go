package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/modifiers"
)

func neutral() []modifiers.TypingEffect {
	return nil
}

func TestModulateCombatTakesModifierFloors(t *testing.T) {
	run := modifiers.NewRun()
	run.Add(modifiers.SpeedPressureMod{MinWPM: 20}, 2)
	run.Add(modifiers.AccuracyDemandMod{MinAccuracy: 0.9}, 1)
	run.Add(modifiers.MistakeDamageMod{PerError: 2}, 1)
	effects := modifiers.TypingEffects(modifiers.GraphemeParasite, run)

	th := Modulate(Combat{Enemy: "wisp"}, effects)
	assert.Equal(t, 40.0, th.MinWPM)
	assert.Equal(t, 0.9, th.MinAccuracy)
	assert.Equal(t, 2, th.DamagePerError)
	assert.Equal(t, 0.9, th.AccuracyScale)
	fading, ok := Special[modifiers.FadingLetters](th)
	assert.True(t, ok)
	assert.Equal(t, 0.5, fading.Rate)
	_, ok = Special[modifiers.ReversedWords](th)
	assert.False(t, ok)

	res := th.Evaluate(Performance{WPM: 50, Accuracy: 1, Errors: 3})
	assert.True(t, res.Success)
	assert.Equal(t, 100, res.XP())
	require.Len(t, res.Penalties, 1)
	assert.Equal(t, Penalty{Kind: PenaltyDamage, Amount: 6}, res.Penalties[0])

	res = th.Evaluate(Performance{WPM: 39, Accuracy: 1})
	assert.False(t, res.Success)
}

func TestModulateIsPure(t *testing.T) {
	effects := modifiers.TypingEffects(modifiers.LinguisticAcceleration, nil)
	a := Modulate(Combat{Enemy: "a"}, effects)
	b := Modulate(Combat{Enemy: "a"}, effects)
	assert.Equal(t, a, b)
	assert.Equal(t, 45.0, a.MinWPM)
}

func TestDialogueUsesTopicRequirement(t *testing.T) {
	ctx := Dialogue{NPC: "Mira", Topic: Philosophy, Penalty: DialoguePenalty{PerTypo: 3}, Relationship: 5}
	th := Modulate(ctx, neutral())
	assert.Equal(t, 0.95, th.MinAccuracy)

	res := th.Evaluate(Performance{Accuracy: 0.96, WPM: 10})
	assert.True(t, res.Success)
	assert.Equal(t, []Reward{{Kind: RewardRelationship, Amount: 5, Subject: "Mira"}}, res.Rewards)

	res = th.Evaluate(Performance{Accuracy: 0.9, Errors: 2})
	assert.False(t, res.Success)
	assert.Equal(t, []Penalty{{Kind: PenaltyRelationship, Amount: 6, Subject: "Mira"}}, res.Penalties)
}

func TestRitualTolerance(t *testing.T) {
	th := Modulate(Ritual{Name: "ward", TargetWPM: 40, Tolerance: 5, Backlash: 12}, neutral())
	assert.True(t, th.Evaluate(Performance{WPM: 44, Accuracy: 1}).Success)
	assert.True(t, th.Evaluate(Performance{WPM: 35, Accuracy: 1}).Success)
	res := th.Evaluate(Performance{WPM: 60, Accuracy: 1})
	assert.False(t, res.Success)
	assert.Equal(t, []Penalty{{Kind: PenaltyDamage, Amount: 12}}, res.Penalties)
}

func TestDecryptionNeedsHighAccuracy(t *testing.T) {
	th := Modulate(Decryption{Cipher: Cipher{Kind: CipherReversed}, RewardXP: 40}, neutral())
	assert.False(t, th.Evaluate(Performance{Accuracy: 0.94}).Success)
	res := th.Evaluate(Performance{Accuracy: 0.95})
	assert.True(t, res.Success)
	assert.Equal(t, 40, res.XP())
}

func TestStealthCountsLoudLetters(t *testing.T) {
	th := Modulate(Stealth{LoudLetters: []rune("sz"), NoiseThreshold: 2, SneakingPast: "guard"}, neutral())
	res := th.Evaluate(Performance{Typed: "shadows pass"})
	assert.Equal(t, 4, res.Noise)
	assert.False(t, res.Success)
	assert.Equal(t, PenaltyDetected, res.Penalties[0].Kind)

	res = th.Evaluate(Performance{Typed: "quiet"})
	assert.True(t, res.Success)
}

func TestStealthLoudLettersIgnoreCase(t *testing.T) {
	th := Modulate(Stealth{LoudLetters: []rune("QZ"), NoiseThreshold: 0}, neutral())
	res := th.Evaluate(Performance{Typed: "quiz"})
	assert.Equal(t, 2, res.Noise)
	assert.False(t, res.Success)

	th = Modulate(Stealth{LoudLetters: []rune("qz"), NoiseThreshold: 0}, neutral())
	res = th.Evaluate(Performance{Typed: "QUIZ"})
	assert.Equal(t, 2, res.Noise)
	assert.False(t, res.Success)
}

func TestStealthNoiseAccumulates(t *testing.T) {
	th := Modulate(Stealth{LoudLetters: []rune("qxzj"), NoiseThreshold: 2}, neutral())
	res := th.Evaluate(Performance{Typed: "jump", Noise: 1})
	assert.Equal(t, 2, res.Noise)
	assert.True(t, res.Success)

	res = th.Evaluate(Performance{Typed: "quiet", Noise: res.Noise})
	assert.Equal(t, 3, res.Noise)
	assert.False(t, res.Success)
	assert.Equal(t, PenaltyDetected, res.Penalties[0].Kind)
}

func TestTranscriptionAndRaceAndPersuasion(t *testing.T) {
	th := Modulate(Transcription{Source: "scroll", PerfectRequired: true}, neutral())
	assert.False(t, th.Evaluate(Performance{WPM: 90, Accuracy: 0.99}).Success)
	assert.True(t, th.Evaluate(Performance{WPM: 5, Accuracy: 1, Perfect: true}).Success)

	th = Modulate(Transcription{Source: "notes"}, neutral())
	assert.True(t, th.Evaluate(Performance{WPM: 30, Accuracy: 0.85}).Success)

	th = Modulate(Race{Opponent: "Quill", OpponentWPM: 70, Prize: 25}, neutral())
	assert.False(t, th.Evaluate(Performance{WPM: 70, Accuracy: 1}).Success)
	res := th.Evaluate(Performance{WPM: 71, Accuracy: 0.5})
	assert.True(t, res.Success)
	assert.Equal(t, RewardGold, res.Rewards[0].Kind)

	th = Modulate(Persuasion{NPC: "Sage", Argument: "words are empty"}, neutral())
	assert.True(t, th.Evaluate(Performance{WPM: 30, Accuracy: 0.85}).Success)
	assert.False(t, th.Evaluate(Performance{WPM: 29, Accuracy: 0.99}).Success)
}

func TestScalesApplyBeforePredicates(t *testing.T) {
	effects := modifiers.TypingEffects(modifiers.TruthInversion, nil)
	th := Modulate(Race{OpponentWPM: 80}, effects)
	res := th.Evaluate(Performance{WPM: 90, Accuracy: 1})
	assert.InDelta(t, 76.5, res.WPM, 1e-9)
	assert.False(t, res.Success)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "Khoor, zruog", Encode(Cipher{Kind: CipherCaesar, Shift: 3}, "Hello, world"))
	assert.Equal(t, "abc", Encode(Cipher{Kind: CipherCaesar, Shift: -3}, "def"))
	assert.Equal(t, "olleh", Encode(Cipher{Kind: CipherReversed}, "hello"))
	assert.Equal(t, "h_ll_", Encode(Cipher{Kind: CipherVowelless}, "hello"))
	assert.Equal(t, "1 2 / 3 ", Encode(Cipher{Kind: CipherNumeric}, "ab c"))
}

func TestTopicParseAndName(t *testing.T) {
	tp, err := ParseTopic("Negotiation")
	require.NoError(t, err)
	assert.Equal(t, Negotiation, tp)
	assert.Equal(t, 0.9, tp.AccuracyRequirement())
	_, err = ParseTopic("weather")
	assert.Error(t, err)
	assert.Equal(t, "Stealth", Name(Stealth{}))
}

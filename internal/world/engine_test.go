package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/challenge"
	"github.com/verte-zerg/keystrike/internal/events"
	"github.com/verte-zerg/keystrike/internal/modifiers"
)

func TestEngineDeterministicSeed(t *testing.T) {
	a := New(99)
	b := New(99)
	assert.Equal(t, a.Info(), b.Info())
	require.NotEmpty(t, a.TypingEffects())
	assert.Equal(t, 0.15, a.CorruptionLevel())
}

func TestVictoryGrantsExperience(t *testing.T) {
	e := New(7)
	e.Emit(events.CombatEnded{Enemy: "wisp", Outcome: events.Victory, XP: 40})
	e.Emit(events.CombatEnded{Enemy: "ghoul", Outcome: events.Defeat, XP: 40})
	e.Tick()
	assert.Equal(t, 40, e.Info().XP)
	gained := e.Bus().History(events.TypeExperienceGained)
	require.Len(t, gained, 1)
	assert.Equal(t, "Defeated wisp", gained[0].Event.(events.ExperienceGained).Source)
}

func TestWeeklyCorruptionSpread(t *testing.T) {
	e := New(7)
	e.Emit(events.TimePassed{Days: 6})
	e.Tick()
	assert.Equal(t, 0.15, e.CorruptionLevel())
	e.Emit(events.TimePassed{Days: 1})
	e.Tick()
	assert.InDelta(t, 0.17, e.CorruptionLevel(), 1e-9)

	acc := WithRunType(7, modifiers.Corruption)
	acc.Emit(events.TimePassed{Days: 14})
	acc.Tick()
	assert.InDelta(t, 0.25, acc.CorruptionLevel(), 1e-9)
	assert.Len(t, acc.Bus().History(events.TypeCorruptionChanged), 2)
}

func TestThresholdsIncludeRunModifiers(t *testing.T) {
	e := New(3)
	e.AddModifier(modifiers.SpeedPressureMod{MinWPM: 90}, 1)
	th := e.Thresholds(challenge.Combat{Enemy: "x"})
	assert.Equal(t, 90.0, th.MinWPM)
}

func TestApplyPreset(t *testing.T) {
	e := New(3)
	require.NoError(t, e.ApplyPreset("nightmare"))
	assert.True(t, e.Run().Has(modifiers.MistakeDamage))
	th := e.Thresholds(challenge.Combat{})
	assert.GreaterOrEqual(t, th.DamagePerError, 2)
	assert.Error(t, e.ApplyPreset("nope"))
}

func TestAdvanceChapter(t *testing.T) {
	e := New(1)
	e.AdvanceChapter()
	e.Tick()
	assert.Equal(t, 2, e.Info().Chapter)
	assert.Len(t, e.Bus().History(events.TypeChapterStarted), 1)
}

func TestEncountersPassTimeAndChapters(t *testing.T) {
	e := New(7)
	for i := 0; i < 6; i++ {
		e.Emit(events.CombatEnded{Enemy: "wisp", Outcome: events.Victory})
	}
	e.Emit(events.CombatEnded{Enemy: "ghoul", Outcome: events.Fled})
	e.Tick()

	info := e.Info()
	assert.Equal(t, 7, info.Days)
	assert.Equal(t, 3, info.Chapter)
	assert.InDelta(t, 0.17, info.CorruptionLevel, 1e-9)
	assert.Len(t, e.Bus().History(events.TypeTimePassed), 7)
	assert.Len(t, e.Bus().History(events.TypeChapterStarted), 2)
}

func TestPassDays(t *testing.T) {
	e := New(7)
	e.PassDays(0)
	assert.Zero(t, e.Info().Days)
	e.PassDays(21)
	assert.Equal(t, 21, e.Info().Days)
	assert.InDelta(t, 0.21, e.CorruptionLevel(), 1e-9)
}

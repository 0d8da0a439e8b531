package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verte-zerg/keystrike/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "keystrike.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func encounter(i int, lang, enemy, outcome string) model.EncounterStats {
	start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
	end := start.Add(30 * time.Second)
	return model.EncounterStats{
		RunID:             "run-1",
		StartedAt:         start,
		EndedAt:           end,
		Lang:              lang,
		Enemy:             enemy,
		Context:           "combat",
		Outcome:           outcome,
		RunType:           "standard",
		Words:             10,
		PerfectWords:      8,
		MaxCombo:          6,
		XP:                25,
		WPM:               60,
		Accuracy:          0.95,
		PeakFlow:          "flowing",
		CorrectNonSpace:   40,
		IncorrectNonSpace: 2,
		DurationMs:        end.Sub(start).Milliseconds(),
	}
}

func TestInsertEncounterAssignsIDs(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	enc := encounter(0, "en", "typo-gremlin", model.OutcomeVictory)
	enc.RunID = ""
	id, err := st.InsertEncounter(ctx, enc, []model.CharStats{{Char: "a", Correct: 3, Incorrect: 1, LatencySumMs: 300, LatencyCount: 3}})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	list, err := st.ListEncounters(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "typo-gremlin", list[0].Enemy)
	assert.Equal(t, 6, list[0].MaxCombo)
	assert.True(t, list[0].EndedAt.Equal(enc.EndedAt))
}

func TestInsertEncounterRejectsEmpty(t *testing.T) {
	st := openTestStore(t)
	enc := encounter(0, "en", "typo-gremlin", model.OutcomeFled)
	enc.Words = 0
	_, err := st.InsertEncounter(context.Background(), enc, nil)
	require.ErrorIs(t, err, ErrEmptyEncounter)
}

func TestListEncountersFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i, e := range []struct{ lang, enemy string }{
		{"en", "typo-gremlin"},
		{"de", "typo-gremlin"},
		{"en", "keyboard-slime"},
	} {
		_, err := st.InsertEncounter(ctx, encounter(i, e.lang, e.enemy, model.OutcomeVictory), nil)
		require.NoError(t, err)
	}

	en, err := st.ListEncounters(ctx, model.StatsConfig{Lang: "en"})
	require.NoError(t, err)
	assert.Len(t, en, 2)

	slime, err := st.ListEncounters(ctx, model.StatsConfig{Enemy: "keyboard-slime"})
	require.NoError(t, err)
	require.Len(t, slime, 1)
	assert.Equal(t, "keyboard-slime", slime[0].Enemy)

	since := time.Unix(0, 0).Add(90 * time.Second)
	late, err := st.ListEncounters(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	assert.Len(t, late, 2)
}

func TestWeakCharsUseRecentWindow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		chars := []model.CharStats{{Char: "a", Correct: 1}}
		if i == 2 {
			chars = append(chars, model.CharStats{Char: "q", Incorrect: 4})
		}
		_, err := st.InsertEncounter(ctx, encounter(i, "en", "typo-gremlin", model.OutcomeVictory), chars)
		require.NoError(t, err)
	}

	aggs, err := st.GetWeakChars(ctx, 1, "en")
	require.NoError(t, err)
	byChar := map[string]model.CharAggregate{}
	for _, agg := range aggs {
		byChar[agg.Char] = agg
	}
	assert.Equal(t, 1, byChar["a"].Correct)
	assert.Equal(t, 4, byChar["q"].Incorrect)

	all, err := st.GetWeakChars(ctx, 10, "")
	require.NoError(t, err)
	for _, agg := range all {
		if agg.Char == "a" {
			assert.Equal(t, 3, agg.Correct)
		}
	}

	none, err := st.GetWeakChars(ctx, 0, "en")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCharStatsForEncounters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertEncounter(ctx, encounter(0, "en", "typo-gremlin", model.OutcomeVictory), []model.CharStats{
		{Char: "a", Correct: 5},
		{Char: "b", Correct: 2, Incorrect: 2},
	})
	require.NoError(t, err)

	got, err := st.ListCharStatsForEncounters(ctx, []string{id}, []string{"b"})
	require.NoError(t, err)
	require.Contains(t, got, id)
	assert.Equal(t, 2, got[id]["b"].Incorrect)
	assert.NotContains(t, got[id], "a")

	aggs, err := st.ListCharAggregatesForEncounters(ctx, []string{id})
	require.NoError(t, err)
	assert.Len(t, aggs, 2)
}

func TestRunTotals(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, err := st.InsertEncounter(ctx, encounter(0, "en", "typo-gremlin", model.OutcomeVictory), nil)
	require.NoError(t, err)
	lost := encounter(1, "en", "typo-gremlin", model.OutcomeDefeat)
	lost.XP = 0
	_, err = st.InsertEncounter(ctx, lost, nil)
	require.NoError(t, err)

	xp, wins, err := st.RunTotals(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 25, xp)
	assert.Equal(t, 1, wins)
}

package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "keystrike.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, enemy := range []string{"typo-gremlin", "typo-gremlin", "keyboard-slime"} {
		outcome := model.OutcomeVictory
		if i == 1 {
			outcome = model.OutcomeDefeat
		}
		_, err := st.InsertEncounter(context.Background(), model.EncounterStats{
			StartedAt:         start.Add(time.Duration(i) * time.Hour),
			EndedAt:           start.Add(time.Duration(i)*time.Hour + time.Minute),
			Lang:              "en",
			Enemy:             enemy,
			Context:           "combat",
			Outcome:           outcome,
			Words:             12,
			MaxCombo:          4 + i,
			XP:                10,
			CorrectNonSpace:   250,
			IncorrectNonSpace: 10,
			DurationMs:        60000,
		}, []model.CharStats{{Char: "e", Correct: 30, Incorrect: 2, LatencySumMs: 3000, LatencyCount: 30}})
		require.NoError(t, err)
	}
	return st
}

func TestOverviewShowsEncounterTotals(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 2})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Encounters")
	assert.Contains(t, view, "typo-gremlin")
	assert.Contains(t, view, "1/2 won")
	assert.Contains(t, view, "Learning Curves")
}

func TestTabsWrapAround(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabCurves, m.activeTab)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabOverview, m.activeTab)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabChars, m.activeTab)
	assert.Contains(t, m.View(), "Accuracy")
}

func TestFilterNarrowsEncounters(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Len(t, m.report.Encounters, 3)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.filterMode)
	m.filterInput.SetValue("enemy=keyboard-slime")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.filterMode)
	assert.Equal(t, "keyboard-slime", m.cfg.Enemy)
	assert.Len(t, m.report.Encounters, 1)
}

func TestParseFilter(t *testing.T) {
	base := model.StatsConfig{Lang: "en", CurveWindow: 10}

	cfg, err := parseFilter("enemy=slime last=5 since=2024-02-01", base)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "slime", cfg.Enemy)
	assert.Equal(t, 5, cfg.Last)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, "2024-02-01", cfg.Since.Format(dateLayout))

	cfg, err = parseFilter("lang=any", base)
	require.NoError(t, err)
	assert.Empty(t, cfg.Lang)

	for _, bad := range []string{"window=0", "last=-1", "since=yesterday", "colour=red", "enemy"} {
		_, err := parseFilter(bad, base)
		assert.Error(t, err, bad)
	}
}

func TestFormatFilterRoundTrips(t *testing.T) {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	cfg := model.StatsConfig{Lang: "de", Enemy: "slime", Since: &since, Last: 3, CurveWindow: 7}
	parsed, err := parseFilter(formatFilter(cfg), model.StatsConfig{})
	require.NoError(t, err)
	assert.Equal(t, cfg.Lang, parsed.Lang)
	assert.Equal(t, cfg.Enemy, parsed.Enemy)
	assert.Equal(t, cfg.Last, parsed.Last)
	assert.Equal(t, cfg.CurveWindow, parsed.CurveWindow)
	assert.True(t, parsed.Since.Equal(since))
}

func TestCurveWindowSteps(t *testing.T) {
	assert.Equal(t, 5, nextCurveWindow(1))
	assert.Equal(t, 10, nextCurveWindow(5))
	assert.Equal(t, 10, nextCurveWindow(7))
	assert.Equal(t, 1, prevCurveWindow(5))
	assert.Equal(t, 5, prevCurveWindow(7))
	assert.Equal(t, 10, prevCurveWindow(15))
}

func TestFitLines(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	assert.Equal(t, "ab  \ncd  ", out)
	assert.Equal(t, 3, len(strings.Split(fitLines("x", 2, 3), "\n")))
	assert.Equal(t, "abc...", truncateLine("abcdefghij", 6))
}

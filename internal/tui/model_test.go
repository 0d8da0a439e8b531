package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/arena"
	"github.com/verte-zerg/keystrike/internal/content"
	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/rng"
	"github.com/verte-zerg/keystrike/internal/store"
	"github.com/verte-zerg/keystrike/internal/typing"
	"github.com/verte-zerg/keystrike/internal/world"
)

func newTestModel(t *testing.T, st *store.Store, hp int, script ...string) *Model {
	t.Helper()
	enemy := content.Enemy{ID: "typo-gremlin", Name: "Typo Gremlin", HP: hp, Attack: 5, XP: 15}
	enc, err := arena.New(world.New(9), arena.Config{
		Enemy:    enemy,
		Setup:    arena.Setup{Script: script},
		PlayerHP: 50,
		Lang:     "en",
	}, arena.WithCritSource(rng.NewFixed(0.99)))
	require.NoError(t, err)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewModel(enc, st, nil, "en")
	m.now = func() time.Time {
		clock = clock.Add(60 * time.Millisecond)
		return clock
	}
	require.NotNil(t, m.Init())
	return m
}

func send(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysDriveEncounter(t *testing.T) {
	m := newTestModel(t, nil, 500, "cat", "dog")

	send(m, runes("ca"))
	assert.Equal(t, "ca", m.enc.Typed())
	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "c", m.enc.Typed())
	send(m, runes("at"), tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "dog", m.enc.Target())
	assert.Less(t, m.enc.EnemyHP(), 500)
	assert.NotEmpty(t, m.feed)

	view := m.View()
	assert.Contains(t, view, "Typo Gremlin")
	assert.Contains(t, view, "dog")
}

func TestSpaceOnEmptyWordIsIgnored(t *testing.T) {
	m := newTestModel(t, nil, 500, "cat")
	send(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "cat", m.enc.Target())
	assert.Equal(t, 1, m.enc.Remaining())
}

func TestFleeSavesEncounter(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "keystrike.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	m := newTestModel(t, st, 500, "cat", "dog")
	send(m, runes("cat"), tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.enc.Done())
	assert.NotEmpty(t, m.savedID)
	assert.True(t, strings.Contains(m.View(), "FLED"))
	assert.Contains(t, m.View(), "day 1, chapter 1")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	list, err := st.ListEncounters(t.Context(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.OutcomeFled, list[0].Outcome)
}

func TestDescribeEffect(t *testing.T) {
	_, _, ok := describeEffect(typing.DamageDealt{Amount: 12, Critical: true}, nil)
	assert.False(t, ok)

	text, _, ok := describeEffect(typing.SpeedMilestone{WPM: 100}, nil)
	assert.True(t, ok)
	assert.Equal(t, "100 WPM!", text)

	text, _, ok = describeEffect(typing.ComboMilestone{Combo: 10}, nil)
	assert.True(t, ok)
	assert.Equal(t, "10x combo", text)

	_, _, ok = describeEffect(nil, nil)
	assert.False(t, ok)
}

func TestFeedExpires(t *testing.T) {
	now := time.Unix(0, 0)
	var feed []feedLine
	for i := 0; i < feedMax+2; i++ {
		feed = pushFeed(feed, "x", footerStyle, now)
	}
	assert.Len(t, feed, feedMax)
	assert.Empty(t, pruneFeed(feed, now.Add(feedLifetime)))
}

func feedTexts(m *Model) []string {
	var out []string
	for _, line := range m.feed {
		out = append(out, line.text)
	}
	return out
}

func TestFeedNarratesEncounter(t *testing.T) {
	m := newTestModel(t, nil, 1, "cat", "dog")
	assert.Equal(t, []string{"Typo Gremlin appears."}, feedTexts(m))

	send(m, runes("cat"))
	require.Len(t, m.strokes, 3)
	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.strokes, 2)
	send(m, runes("t"), tea.KeyMsg{Type: tea.KeySpace})
	assert.Empty(t, m.strokes)

	require.True(t, m.enc.Done())
	feed := feedTexts(m)
	assert.Contains(t, feed, "Typo Gremlin falls.")
	var narrated bool
	for _, line := range feed {
		narrated = narrated || strings.Contains(line, " for ")
	}
	assert.True(t, narrated, "expected an attack line in %v", feed)

	view := m.View()
	assert.Contains(t, view, "VICTORY")
	assert.Contains(t, view, "Typo Gremlin falls.")
}

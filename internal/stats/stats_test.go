package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/model"
)

func TestEncounterMetrics(t *testing.T) {
	wpm, cpm, acc := EncounterMetrics(50, 0, 60000)
	assert.InDelta(t, 10.0, wpm, 1e-9)
	assert.InDelta(t, 50.0, cpm, 1e-9)
	assert.InDelta(t, 1.0, acc, 1e-9)

	wpm, cpm, acc = EncounterMetrics(10, 10, 0)
	assert.Zero(t, wpm+cpm+acc)
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
}

func TestSparklineAndResample(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{5, 5, 5}))
	line := Sparkline([]float64{0, 10})
	assert.Equal(t, " @", line)

	res := Resample([]float64{1, 3, 5, 7}, 2)
	assert.Equal(t, []float64{2, 6}, res)
	assert.Len(t, Resample([]float64{1, 2}, 10), 2)
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, nil))
	assert.Contains(t, buf.String(), "No encounters found.")

	buf.Reset()
	encounters := []model.EncounterAggregate{
		{ID: "a", EndedAt: time.Unix(0, 0), Outcome: model.OutcomeVictory, Correct: 50, DurationMs: 60000, MaxCombo: 12, Criticals: 2, XP: 30},
		{ID: "b", EndedAt: time.Unix(60, 0), Outcome: model.OutcomeDefeat, Correct: 100, DurationMs: 60000, MaxCombo: 4},
	}
	require.NoError(t, RenderSummary(&buf, encounters))
	out := buf.String()
	assert.Contains(t, out, "Encounters: 2 (1 won)")
	assert.Contains(t, out, "Best WPM: 20.00")
	assert.Contains(t, out, "Best Combo: 12")
	assert.Contains(t, out, "XP: 30")
}

func TestRenderCurvesFitWidth(t *testing.T) {
	encounters := make([]model.EncounterAggregate, 200)
	for i := range encounters {
		encounters[i] = model.EncounterAggregate{ID: string(rune('a' + i%26)), Correct: 10 + i, Incorrect: i % 3, DurationMs: 60000}
	}
	var buf bytes.Buffer
	require.NoError(t, RenderCurves(&buf, encounters, 5, 60))
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 60, line)
	}
}

func TestRenderCharTableSortsByAccuracy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCharTable(&buf, []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: " ", Correct: 1, Incorrect: 1},
	}))
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[2], "<space>"), lines[2])
}

// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keystrike/internal/model"
)

const sparkChars = " .:-=+*#%@"

// EncounterMetrics computes WPM, CPM, and accuracy for an encounter.
func EncounterMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	if den := float64(correct + incorrect); den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * float64(last)))
		idx = max(0, min(idx, last))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample buckets values into at most width points by averaging.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// RenderSummary prints a summary block for encounters.
func RenderSummary(w io.Writer, encounters []model.EncounterAggregate) error {
	if len(encounters) == 0 {
		_, err := fmt.Fprintln(w, "No encounters found.")
		return err
	}
	var totalWPM, totalCPM, totalAcc, bestWPM float64
	var wins, xp, bestCombo, crits int
	for _, e := range encounters {
		wpm, cpm, acc := EncounterMetrics(e.Correct, e.Incorrect, e.DurationMs)
		totalWPM += wpm
		totalCPM += cpm
		totalAcc += acc
		bestWPM = math.Max(bestWPM, wpm)
		bestCombo = max(bestCombo, e.MaxCombo)
		crits += e.Criticals
		xp += e.XP
		if e.Outcome == model.OutcomeVictory {
			wins++
		}
	}
	count := float64(len(encounters))
	lines := []string{
		"Summary",
		fmt.Sprintf("Encounters: %d (%d won)", len(encounters), wins),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Best Combo: %d", bestCombo),
		fmt.Sprintf("Criticals: %d", crits),
		fmt.Sprintf("XP: %d", xp),
		"",
	}
	return writeLines(w, lines)
}

// RenderCurves prints WPM and accuracy learning curves as sparklines no
// wider than width columns. A width of zero uses the terminal width.
func RenderCurves(w io.Writer, encounters []model.EncounterAggregate, window, width int) error {
	if len(encounters) == 0 {
		return nil
	}
	wpms := make([]float64, len(encounters))
	accs := make([]float64, len(encounters))
	for i, e := range encounters {
		wpm, _, acc := EncounterMetrics(e.Correct, e.Incorrect, e.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	return renderSeries(w, "Learning Curves", []series{
		{name: "WPM", values: MovingAverage(wpms, window)},
		{name: "Accuracy", values: MovingAverage(accs, window)},
	}, width)
}

// RenderCharTable prints per-character aggregates, lowest accuracy first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := accuracy(sorted[i]), accuracy(sorted[j])
		if ai == aj {
			return sorted[i].Char < sorted[j].Char
		}
		return ai < aj
	})

	cols := []column{
		{title: "Char"},
		{title: "Accuracy", right: true},
		{title: "Avg Latency (ms)", right: true},
		{title: "Correct", right: true},
		{title: "Incorrect", right: true},
	}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		rows = append(rows, []string{
			charLabel(agg.Char),
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", latency(agg)),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	lines := append([]string{"Per-Character (Windowed)"}, renderTable(cols, rows)...)
	return writeLines(w, append(lines, ""))
}

// RenderCharCurves prints accuracy and latency curves for selected characters.
func RenderCharCurves(w io.Writer, encounters []model.EncounterAggregate, perEncounter map[string]map[string]model.CharAggregate, chars []string, window, width int) error {
	if len(chars) == 0 || len(encounters) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Character Curves"); err != nil {
		return err
	}
	for _, ch := range chars {
		accSeries := make([]float64, len(encounters))
		latSeries := make([]float64, len(encounters))
		for i, e := range encounters {
			agg, ok := perEncounter[e.ID][ch]
			if !ok {
				continue
			}
			if agg.Correct+agg.Incorrect > 0 {
				accSeries[i] = accuracy(agg) * 100
			}
			latSeries[i] = latency(agg)
		}
		if err := renderSeries(w, "Char "+charLabel(ch), []series{
			{name: "Accuracy", values: MovingAverage(accSeries, window)},
			{name: "Latency", values: MovingAverage(latSeries, window)},
		}, width); err != nil {
			return err
		}
	}
	return nil
}

type series struct {
	name   string
	values []float64
}

func renderSeries(w io.Writer, title string, list []series, width int) error {
	if width <= 0 {
		width = TerminalWidth()
	}
	labelWidth := 0
	for _, s := range list {
		labelWidth = max(labelWidth, runewidth.StringWidth(s.name))
	}
	// label, two spaces, sparkline, space, [min..max]
	sparkWidth := max(width-labelWidth-24, 8)

	lines := []string{title}
	for _, s := range list {
		if len(s.values) == 0 {
			continue
		}
		lo, hi := s.values[0], s.values[0]
		for _, v := range s.values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		lines = append(lines, fmt.Sprintf("%s  %s [%.1f..%.1f]",
			align(s.name, labelWidth, false),
			Sparkline(Resample(s.values, sparkWidth)),
			lo, hi))
	}
	return writeLines(w, append(lines, ""))
}

func charLabel(ch string) string {
	if ch == " " {
		return "<space>"
	}
	return ch
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

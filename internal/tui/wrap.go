// Package tui provides the Bubble Tea encounter screen: it decodes key
// events for the arena and renders the effects the typing engine queues.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell is one rendered rune of the prompt.
type cell struct {
	s     string
	width int
	brk   bool
}

func newCell(r rune, style lipgloss.Style) cell {
	return cell{s: style.Render(string(r)), width: runewidth.RuneWidth(r), brk: r == ' '}
}

// promptCells styles the word under attack. shown is what the player sees
// (cipher text for decryption), expected is what must be typed and may be
// nil when it has the same runes as shown. strokes optionally styles each
// correct rune by its keystroke. Runes typed past the end of the word are
// appended in the error style so overtyping is visible.
func promptCells(shown, expected, typed []rune, strokes []lipgloss.Style) []cell {
	if expected == nil {
		expected = shown
	}
	out := make([]cell, 0, max(len(shown), len(typed)))
	for i, r := range shown {
		style := currentWordStyle
		switch {
		case i < len(typed) && i < len(expected) && typed[i] == expected[i]:
			style = correctStyle
			if i < len(strokes) {
				style = strokes[i]
			}
		case i < len(typed):
			style = incorrectStyle
		case i == len(typed):
			style = cursorStyle
		}
		out = append(out, newCell(r, style))
	}
	for _, r := range typed[min(len(shown), len(typed)):] {
		if r == ' ' {
			r = '•'
		}
		out = append(out, newCell(r, incorrectStyle))
	}
	return out
}

// queueCells renders the upcoming words dimmed, each preceded by a space.
func queueCells(words []string) []cell {
	var out []cell
	for _, w := range words {
		out = append(out, newCell(' ', pendingStyle))
		for _, r := range w {
			out = append(out, newCell(r, pendingStyle))
		}
	}
	return out
}

// wrapCells lays cells out in lines of at most width columns, breaking at
// spaces. A word wider than a whole line is split where it overflows.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var lines []string
	var line []cell
	used := 0
	flush := func() {
		lines = append(lines, joinCells(line))
		line, used = nil, 0
	}
	for _, word := range splitWords(cells) {
		w := cellsWidth(word)
		sep := 0
		if len(line) > 0 {
			sep = 1
		}
		if used+sep+w <= width {
			if sep == 1 {
				line = append(line, newCell(' ', pendingStyle))
			}
			line = append(line, word...)
			used += sep + w
			continue
		}
		if len(line) > 0 {
			flush()
		}
		for _, c := range word {
			if used+c.width > width && len(line) > 0 {
				flush()
			}
			line = append(line, c)
			used += c.width
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

// splitWords drops break cells and groups the rest into words.
func splitWords(cells []cell) [][]cell {
	var words [][]cell
	var cur []cell
	for _, c := range cells {
		if c.brk {
			if len(cur) > 0 {
				words = append(words, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		words = append(words, cur)
	}
	return words
}

func cellsWidth(cells []cell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}

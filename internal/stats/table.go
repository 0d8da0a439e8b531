package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is a text table column. Numeric columns align right.
type column struct {
	title string
	right bool
}

// renderTable lays rows out under the column titles, one space between
// columns. Widths are measured in terminal cells, not bytes.
func renderTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			widths[i] = max(widths[i], runewidth.StringWidth(cellAt(row, i)))
		}
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	for _, row := range append([][]string{titles}, rows...) {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = align(cellAt(row, i), widths[i], c.right)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// align pads s to width cells.
func align(s string, width int, right bool) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Char"}, {title: "Accuracy", right: true}, {title: "Correct", right: true}}
	lines := renderTable(cols, [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%"},
	})
	assert.Equal(t, []string{
		"Char    Accuracy Correct",
		"a         97.50%      12",
		"<space>    8.00%        ",
	}, lines)
}

func TestRenderTableMeasuresWideRunes(t *testing.T) {
	lines := renderTable([]column{{title: "C"}, {title: "N", right: true}}, [][]string{{"日", "1"}})
	assert.Equal(t, "C  N", lines[0])
	assert.Equal(t, "日 1", lines[1])
	assert.Nil(t, renderTable(nil, nil))
}

package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "TIME"},
		[][]string{
			{StyleGreen.Render("Thesis"), "1h 30m"},
			{"Gym", "45m"},
		},
	)

	lines := strings.Split(strings.TrimRight(stripANSI(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME    TIME", lines[0])
	assert.Equal(t, "──────  ──────", lines[1])
	assert.Equal(t, "Thesis  1h 30m", lines[2])
	assert.Equal(t, "Gym     45m", lines[3])
}

func TestRenderTable_RaggedRows(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{"x"}, {"y", "z", "dropped"}},
	))

	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "x  \n")
	assert.Contains(t, out, "y  z\n")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

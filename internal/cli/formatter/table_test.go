package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "MIN"},
		[][]string{{"Intro", "5"}, {"A much longer title", "120"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME                 MIN", lines[0])
	assert.Equal(t, "───────────────────  ───", lines[1])
	assert.Equal(t, "Intro                5", lines[2])
	assert.Equal(t, "A much longer title  120", lines[3])
}

func TestRenderTableAligned_RightAlignsNumbers(t *testing.T) {
	out := stripANSI(RenderTableAligned(
		[]string{"NAME", "MIN"},
		[][]string{{"Intro", "5"}, {"Setup", "120"}},
		1,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Intro    5", lines[2])
	assert.Equal(t, "Setup  120", lines[3])
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))

	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"only"}}))
	assert.Contains(t, out, "only")
}

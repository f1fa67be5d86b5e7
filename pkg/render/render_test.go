package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValues_NoColor(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, WithColor(false))

	step := trace.Step{
		Snapshot: []int{4, 7, 1, 9, 3},
		Highlight: trace.NewHighlight().
			WithComparing(0, 1).
			WithSwapping(1).
			WithSorted(2).
			WithPivot(3),
	}

	assert.Equal(t, "[4] <7> (1) |9| 3", p.FormatValues(step))
}

func TestFormatValues_Color(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, WithColor(true))
	step := trace.Step{Snapshot: []int{1, 2}, Highlight: trace.NewHighlight().WithPivot(0)}

	out := p.FormatValues(step)
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.HasSuffix(out, " 2"), "unhighlighted values stay plain")
}

func TestPrintTrace(t *testing.T) {
	tr, err := sorting.Run(string(types.BubbleSort), []int{2, 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPrinter(&buf, WithColor(false))
	require.NoError(t, p.PrintTrace(tr, nil))

	out := buf.String()
	assert.Contains(t, out, "[1/")
	assert.Contains(t, out, tr.First().Explanation)
	assert.Contains(t, out, "(1) (2)", "completion step marks every index sorted")
	assert.Contains(t, out, tr.Last().LogicExplanation)
}

func TestPrintTrace_SelectedIndices(t *testing.T) {
	tr, err := sorting.Run(string(types.QuickSort), []int{3, 1, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPrinter(&buf, WithColor(false), WithLogic(false))
	require.NoError(t, p.PrintTrace(tr, []int{tr.Len() - 1}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], fmt.Sprintf("[%d/%d]", tr.Len(), tr.Len())))
}

func TestPrintLegend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, WithColor(false)).PrintLegend())
	assert.Equal(t, "Legend: [comparing] <swapping> (sorted) |pivot|\n", buf.String())
}

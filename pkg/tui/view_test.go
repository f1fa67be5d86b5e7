package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dshills/goterm"
	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/stretchr/testify/assert"
)

// Cell records what was drawn at one screen position.
type Cell struct {
	Rune  rune
	Fg    goterm.Color
	Style goterm.Style
}

// MockScreen implements ScreenInterface for testing
type MockScreen struct {
	width  int
	height int
	cells  map[string]Cell // key is "x,y"
	shows  int
}

func NewMockScreen(width, height int) *MockScreen {
	return &MockScreen{
		width:  width,
		height: height,
		cells:  make(map[string]Cell),
	}
}

func (m *MockScreen) Size() (int, int) {
	return m.width, m.height
}

func (m *MockScreen) Clear() {
	m.cells = make(map[string]Cell)
}

func (m *MockScreen) Show() error {
	m.shows++
	return nil
}

func (m *MockScreen) SetCell(x, y int, cell goterm.Cell) {
	m.cells[fmt.Sprintf("%d,%d", x, y)] = Cell{Rune: cell.Ch, Fg: cell.Fg, Style: cell.Style}
}

func (m *MockScreen) DrawText(x, y int, text string, fg, bg goterm.Color, style goterm.Style) {
	i := 0
	for _, ch := range text {
		m.SetCell(x+i, y, goterm.NewCell(ch, fg, bg, style))
		i++
	}
}

func (m *MockScreen) cell(x, y int) (Cell, bool) {
	c, ok := m.cells[fmt.Sprintf("%d,%d", x, y)]
	return c, ok
}

// row returns the text drawn on row y.
func (m *MockScreen) row(y int) string {
	var sb strings.Builder
	for x := 0; x < m.width; x++ {
		if c, ok := m.cell(x, y); ok {
			sb.WriteRune(c.Rune)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestRenderFrame(t *testing.T) {
	screen := NewMockScreen(40, 20)
	step := trace.Step{
		Snapshot:         []int{4, 8, 2},
		Explanation:      "🔍 Comparing 8 with pivot 2",
		LogicExplanation: "Check if 8 <= pivot to decide placement.",
		Highlight:        trace.NewHighlight().WithComparing(1, 2).WithPivot(2),
	}

	renderFrame(screen, frame{
		Title:    "Quick Sort",
		Position: 2,
		Total:    9,
		Step:     step,
		Playing:  true,
		Interval: 300 * time.Millisecond,
	})

	assert.Equal(t, "Quick Sort  step 3/9  [playing 300ms]", screen.row(0))
	assert.Equal(t, step.Explanation, screen.row(16))
	assert.Equal(t, step.LogicExplanation, screen.row(17))
	assert.Equal(t, truncate(helpLine, 40), screen.row(19))

	// Chart occupies rows 2..13; the tallest bar (8) fills the whole column.
	chartBottom := 13
	tallest, ok := screen.cell(13, 2)
	if assert.True(t, ok) {
		assert.Equal(t, comparingFg, tallest.Fg)
	}
	pivot, ok := screen.cell(26, chartBottom)
	if assert.True(t, ok) {
		assert.Equal(t, pivotFg, pivot.Fg, "pivot takes precedence over comparing")
	}
	_, ok = screen.cell(0, 2)
	assert.False(t, ok, "shorter bar does not reach the top")
	assert.Contains(t, screen.row(14), "4")
}

func TestRenderFrame_Truncates(t *testing.T) {
	screen := NewMockScreen(10, 12)
	renderFrame(screen, frame{
		Title: "Selection Sort",
		Total: 2,
		Step:  trace.Step{Snapshot: []int{1}, Explanation: "a long explanation", Highlight: trace.NewHighlight()},
	})

	assert.Equal(t, "Selection…", screen.row(0))
	assert.Equal(t, "a long ex…", screen.row(8))
	assert.Equal(t, "←/→ step …", screen.row(11))
}

func TestRenderFrame_FullHelpLine(t *testing.T) {
	screen := NewMockScreen(80, 20)
	renderFrame(screen, frame{
		Title: "Bubble Sort",
		Total: 2,
		Step:  trace.Step{Snapshot: []int{2, 1}, Highlight: trace.NewHighlight()},
	})

	assert.Equal(t, helpLine, screen.row(19))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "a", truncate("abcd", 1))
	assert.Equal(t, "", truncate("abcd", 0))
}

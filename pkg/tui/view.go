package tui

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dshills/goterm"
	"github.com/dshills/sortviz/pkg/domain/trace"
)

// ScreenInterface defines the methods required from a goterm.Screen
type ScreenInterface interface {
	Size() (width, height int)
	Clear()
	Show() error
	SetCell(x, y int, cell goterm.Cell)
	DrawText(x, y int, text string, fg, bg goterm.Color, style goterm.Style)
}

var (
	textFg      = goterm.ColorRGB(220, 220, 220)
	dimFg       = goterm.ColorRGB(128, 128, 128)
	unsortedFg  = goterm.ColorRGB(154, 165, 177)
	comparingFg = goterm.ColorRGB(242, 201, 76)
	swappingFg  = goterm.ColorRGB(235, 87, 87)
	sortedFg    = goterm.ColorRGB(39, 174, 96)
	pivotFg     = goterm.ColorRGB(155, 81, 224)
)

// roleColor returns the bar color for a role.
func roleColor(role trace.Role) goterm.Color {
	switch role {
	case trace.RolePivot:
		return pivotFg
	case trace.RoleSorted:
		return sortedFg
	case trace.RoleSwapping:
		return swappingFg
	case trace.RoleComparing:
		return comparingFg
	default:
		return unsortedFg
	}
}

// frame is everything drawn for one refresh.
type frame struct {
	Title    string
	Position int
	Total    int
	Step     trace.Step
	Playing  bool
	Interval time.Duration
}

const helpLine = "←/→ step  space play/pause  +/- speed  g/G first/last  q quit"

// layout rows reserved below the chart: labels, blank, explanation, logic, blank, help.
const footerRows = 6

// renderFrame draws f onto screen. It does not call Show.
func renderFrame(screen ScreenInterface, f frame) {
	width, height := screen.Size()
	screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	state := "paused"
	if f.Playing {
		state = "playing " + f.Interval.String()
	}
	header := fmt.Sprintf("%s  step %d/%d  [%s]", f.Title, f.Position+1, f.Total, state)
	screen.DrawText(0, 0, truncate(header, width), textFg, goterm.ColorDefault(), goterm.StyleBold)

	chartTop := 2
	chartHeight := height - chartTop - footerRows
	if chartHeight > 0 {
		drawBars(screen, f.Step, 0, chartTop, width, chartHeight)
	}

	base := max(height-footerRows+2, 1)
	screen.DrawText(0, base, truncate(f.Step.Explanation, width), textFg, goterm.ColorDefault(), goterm.StyleBold)
	screen.DrawText(0, base+1, truncate(f.Step.LogicExplanation, width), textFg, goterm.ColorDefault(), goterm.StyleNone)
	screen.DrawText(0, height-1, truncate(helpLine, width), dimFg, goterm.ColorDefault(), goterm.StyleDim)
}

// drawBars draws one vertical bar per value in the rectangle (x, y, w, h),
// with value labels on the row below when they fit.
func drawBars(screen ScreenInterface, step trace.Step, x, y, w, h int) {
	n := len(step.Snapshot)
	if n == 0 {
		return
	}

	slot := max(w/n, 1)
	barWidth := max(slot-1, 1)
	visible := min(n, w/slot)

	maxValue := 1
	for _, v := range step.Snapshot {
		maxValue = max(maxValue, v)
	}

	for i := 0; i < visible; i++ {
		v := step.Snapshot[i]
		color := roleColor(step.Highlight.RoleOf(i))

		barHeight := 0
		if v > 0 {
			barHeight = max(v*h/maxValue, 1)
		}

		left := x + i*slot
		for row := 0; row < barHeight; row++ {
			for col := 0; col < barWidth; col++ {
				screen.SetCell(left+col, y+h-1-row, goterm.NewCell('█', color, goterm.ColorDefault(), goterm.StyleNone))
			}
		}

		label := strconv.Itoa(v)
		if utf8.RuneCountInString(label) <= barWidth {
			screen.DrawText(left, y+h, label, color, goterm.ColorDefault(), goterm.StyleNone)
		}
	}
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:max(width, 0)])
	}
	return string(runes[:width-1]) + "…"
}

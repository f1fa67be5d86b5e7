// Package render prints traces as colored terminal text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/fatih/color"
)

// style is how one role is drawn, with and without color.
type style struct {
	color          *color.Color
	prefix, suffix string
}

// Printer writes steps to an io.Writer.
type Printer struct {
	w        io.Writer
	useColor bool
	logic    bool
	styles   map[trace.Role]style
}

// Option configures a Printer.
type Option func(*Printer)

// WithColor forces ANSI color on or off. Color is on by default, regardless
// of whether w is a terminal.
func WithColor(enabled bool) Option {
	return func(p *Printer) { p.useColor = enabled }
}

// WithLogic toggles printing the logic explanation under each step.
func WithLogic(enabled bool) Option {
	return func(p *Printer) { p.logic = enabled }
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:        w,
		useColor: true,
		logic:    true,
		styles: map[trace.Role]style{
			trace.RoleComparing: {color: color.New(color.FgYellow), prefix: "[", suffix: "]"},
			trace.RoleSwapping:  {color: color.New(color.FgRed, color.Bold), prefix: "<", suffix: ">"},
			trace.RoleSorted:    {color: color.New(color.FgGreen), prefix: "(", suffix: ")"},
			trace.RolePivot:     {color: color.New(color.FgMagenta, color.Bold), prefix: "|", suffix: "|"},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, s := range p.styles {
		if p.useColor {
			s.color.EnableColor()
		} else {
			s.color.DisableColor()
		}
	}
	return p
}

// FormatValues renders a snapshot with every element styled by its role.
// Without color, roles are shown as brackets: [comparing] <swapping>
// (sorted) |pivot|.
func (p *Printer) FormatValues(step trace.Step) string {
	parts := make([]string, len(step.Snapshot))
	for i, v := range step.Snapshot {
		text := strconv.Itoa(v)
		s, ok := p.styles[step.Highlight.RoleOf(i)]
		switch {
		case !ok:
		case p.useColor:
			text = s.color.Sprint(text)
		default:
			text = s.prefix + text + s.suffix
		}
		parts[i] = text
	}
	return strings.Join(parts, " ")
}

// PrintStep writes one step as "[index/total] explanation", the styled
// values and, optionally, the logic explanation.
func (p *Printer) PrintStep(index, total int, step trace.Step) error {
	_, err := fmt.Fprintf(p.w, "[%d/%d] %s\n    %s\n", index+1, total, step.Explanation, p.FormatValues(step))
	if err != nil {
		return err
	}
	if p.logic && step.LogicExplanation != "" {
		if _, err := fmt.Fprintf(p.w, "    %s\n", step.LogicExplanation); err != nil {
			return err
		}
	}
	return nil
}

// PrintTrace writes the steps at indices, or every step when indices is nil.
func (p *Printer) PrintTrace(t *trace.Trace, indices []int) error {
	if indices == nil {
		indices = make([]int, t.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	for _, i := range indices {
		if err := p.PrintStep(i, t.Len(), t.Steps[i]); err != nil {
			return fmt.Errorf("failed to print step %d: %w", i, err)
		}
	}
	return nil
}

// PrintLegend writes a one-line key of the role styles.
func (p *Printer) PrintLegend() error {
	roles := []trace.Role{trace.RoleComparing, trace.RoleSwapping, trace.RoleSorted, trace.RolePivot}

	parts := make([]string, len(roles))
	for i, role := range roles {
		s := p.styles[role]
		if p.useColor {
			parts[i] = s.color.Sprint(string(role))
		} else {
			parts[i] = s.prefix + string(role) + s.suffix
		}
	}
	_, err := fmt.Fprintf(p.w, "Legend: %s\n", strings.Join(parts, " "))
	return err
}

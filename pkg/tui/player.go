package tui

import (
	"sync"

	"github.com/dshills/sortviz/pkg/domain/trace"
)

// Player is a cursor over the steps of a trace. It is safe for concurrent
// use; the replay loop and the input goroutine share one Player.
type Player struct {
	mu    sync.RWMutex
	trace *trace.Trace
	pos   int
}

// NewPlayer creates a player positioned at the first step of t.
func NewPlayer(t *trace.Trace) *Player {
	return &Player{trace: t}
}

// Len returns the number of steps.
func (p *Player) Len() int {
	return p.trace.Len()
}

// Position returns the zero-based index of the current step.
func (p *Player) Position() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// Current returns the current step.
func (p *Player) Current() trace.Step {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.trace.Len() == 0 {
		return trace.Step{Highlight: trace.NewHighlight()}
	}
	return p.trace.Steps[p.pos]
}

// Next advances one step. It reports false when already at the last step.
func (p *Player) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos >= p.trace.Len()-1 {
		return false
	}
	p.pos++
	return true
}

// Prev moves back one step. It reports false when already at the first step.
func (p *Player) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos == 0 {
		return false
	}
	p.pos--
	return true
}

// First jumps to the first step.
func (p *Player) First() {
	p.mu.Lock()
	p.pos = 0
	p.mu.Unlock()
}

// Last jumps to the completion step.
func (p *Player) Last() {
	p.mu.Lock()
	p.pos = max(p.trace.Len()-1, 0)
	p.mu.Unlock()
}

// Done reports whether the cursor is on the last step.
func (p *Player) Done() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos >= p.trace.Len()-1
}

// Trace returns the trace being replayed.
func (p *Player) Trace() *trace.Trace {
	return p.trace
}

// Package tui replays a recorded trace in the terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dshills/goterm"
	"github.com/dshills/sortviz/pkg/domain/trace"
)

const (
	// DefaultInterval is the autoplay delay between steps.
	DefaultInterval = 300 * time.Millisecond
	minInterval     = 25 * time.Millisecond
	maxInterval     = 3 * time.Second
)

// App is the interactive replay viewer.
type App struct {
	screen    ScreenInterface
	closer    func() error
	input     io.Reader
	player    *Player
	keyboard  *KeyboardHandler
	title     string
	mu        sync.RWMutex
	playing   bool
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	inputChan chan KeyEvent
}

// Option configures an App.
type Option func(*App)

// WithAutoplay starts playback immediately.
func WithAutoplay(enabled bool) Option {
	return func(a *App) { a.playing = enabled }
}

// WithInterval sets the initial autoplay delay.
func WithInterval(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.interval = clampInterval(d)
		}
	}
}

// NewApp initializes the terminal and creates a viewer for t.
func NewApp(title string, t *trace.Trace, opts ...Option) (*App, error) {
	screen, err := goterm.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	app, err := newApp(screen, screen.Close, os.Stdin, title, t, opts...)
	if err != nil {
		_ = screen.Close()
		return nil, err
	}
	return app, nil
}

func newApp(screen ScreenInterface, closer func() error, input io.Reader, title string, t *trace.Trace, opts ...Option) (*App, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("trace has no steps")
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		screen:    screen,
		closer:    closer,
		input:     input,
		player:    NewPlayer(t),
		keyboard:  NewKeyboardHandler(),
		title:     title,
		interval:  DefaultInterval,
		ctx:       ctx,
		cancel:    cancel,
		inputChan: make(chan KeyEvent, 100),
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.registerKeybindings(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to register keybindings: %w", err)
	}
	return app, nil
}

// registerKeybindings registers the replay controls
func (a *App) registerKeybindings() error {
	quit := func(KeyEvent) error {
		a.cancel()
		return nil
	}
	next := func(KeyEvent) error {
		a.pause()
		a.player.Next()
		return nil
	}
	prev := func(KeyEvent) error {
		a.pause()
		a.player.Prev()
		return nil
	}
	first := func(KeyEvent) error {
		a.pause()
		a.player.First()
		return nil
	}
	last := func(KeyEvent) error {
		a.pause()
		a.player.Last()
		return nil
	}

	bindings := []struct {
		key     KeyEvent
		handler KeyHandler
		label   string
	}{
		{KeyEvent{Key: 'q'}, quit, "Quit"},
		{KeyEvent{Key: 'c', Ctrl: true}, quit, "Quit"},
		{KeyEvent{IsSpecial: true, Special: "Escape"}, quit, "Quit"},
		{KeyEvent{IsSpecial: true, Special: "Right"}, next, "Next step"},
		{KeyEvent{Key: 'l'}, next, "Next step"},
		{KeyEvent{IsSpecial: true, Special: "Left"}, prev, "Previous step"},
		{KeyEvent{Key: 'h'}, prev, "Previous step"},
		{KeyEvent{Key: 'g'}, first, "First step"},
		{KeyEvent{IsSpecial: true, Special: "Home"}, first, "First step"},
		{KeyEvent{Key: 'G', Shift: true}, last, "Last step"},
		{KeyEvent{IsSpecial: true, Special: "End"}, last, "Last step"},
		{KeyEvent{Key: ' '}, func(KeyEvent) error { a.togglePlay(); return nil }, "Play/pause"},
		{KeyEvent{Key: '+'}, func(KeyEvent) error { a.adjustSpeed(0.5); return nil }, "Faster"},
		{KeyEvent{Key: '-'}, func(KeyEvent) error { a.adjustSpeed(2); return nil }, "Slower"},
	}

	for _, b := range bindings {
		if err := a.keyboard.RegisterBinding(b.key, b.handler, b.label); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the replay loop and blocks until the user quits.
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go a.readKeyboardInput()

	ticker := time.NewTicker(a.currentInterval())
	defer ticker.Stop()

	if err := a.render(); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}

	for {
		select {
		case <-a.ctx.Done():
			return nil

		case <-sigChan:
			a.cancel()
			return nil

		case event := <-a.inputChan:
			if err := a.keyboard.HandleKey(event); err != nil {
				return fmt.Errorf("keyboard handler error: %w", err)
			}
			ticker.Reset(a.currentInterval())
			if err := a.render(); err != nil {
				return err
			}

		case <-ticker.C:
			if !a.isPlaying() {
				continue
			}
			a.tick()
			if err := a.render(); err != nil {
				return err
			}
		}
	}
}

// tick advances autoplay by one step and stops at the completion step.
func (a *App) tick() {
	if !a.player.Next() || a.player.Done() {
		a.pause()
	}
}

func (a *App) render() error {
	a.mu.RLock()
	f := frame{
		Title:    a.title,
		Position: a.player.Position(),
		Total:    a.player.Len(),
		Step:     a.player.Current(),
		Playing:  a.playing,
		Interval: a.interval,
	}
	a.mu.RUnlock()

	renderFrame(a.screen, f)
	if err := a.screen.Show(); err != nil {
		return fmt.Errorf("screen show failed: %w", err)
	}
	return nil
}

// readKeyboardInput reads keyboard input in a background goroutine
func (a *App) readKeyboardInput() {
	buf := make([]byte, 32)

	for {
		select {
		case <-a.ctx.Done():
			return
		default:
		}

		// Blocking read; goterm has already put the terminal in raw mode.
		n, err := a.input.Read(buf)
		if err != nil {
			if err == io.EOF {
				return
			}
			continue
		}

		if n > 0 {
			event := parseKeyInput(buf[:n])
			select {
			case a.inputChan <- event:
			case <-a.ctx.Done():
				return
			}
		}
	}
}

func (a *App) togglePlay() {
	if a.player.Done() {
		a.player.First()
	}
	a.mu.Lock()
	a.playing = !a.playing
	a.mu.Unlock()
}

func (a *App) pause() {
	a.mu.Lock()
	a.playing = false
	a.mu.Unlock()
}

func (a *App) isPlaying() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.playing
}

func (a *App) adjustSpeed(factor float64) {
	a.mu.Lock()
	a.interval = clampInterval(time.Duration(float64(a.interval) * factor))
	a.mu.Unlock()
}

func (a *App) currentInterval() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.interval
}

func clampInterval(d time.Duration) time.Duration {
	return min(max(d, minInterval), maxInterval)
}

// Close performs cleanup and restores terminal state
func (a *App) Close() error {
	a.cancel()
	if a.closer == nil {
		return nil
	}
	if err := a.closer(); err != nil {
		return fmt.Errorf("failed to close screen: %w", err)
	}
	return nil
}

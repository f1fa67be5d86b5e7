package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, input string, opts ...Option) (*App, *MockScreen) {
	t.Helper()
	tr, err := sorting.Run(string(types.BubbleSort), []int{3, 2, 1})
	require.NoError(t, err)

	screen := NewMockScreen(60, 20)
	app, err := newApp(screen, nil, strings.NewReader(input), "Bubble Sort", tr, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, screen
}

func TestNewApp_EmptyTrace(t *testing.T) {
	_, err := newApp(NewMockScreen(10, 10), nil, strings.NewReader(""), "empty", &trace.Trace{})
	assert.Error(t, err)
}

func TestApp_KeyBindings(t *testing.T) {
	app, _ := newTestApp(t, "")

	right := KeyEvent{IsSpecial: true, Special: "Right"}
	require.NoError(t, app.keyboard.HandleKey(right))
	require.NoError(t, app.keyboard.HandleKey(right))
	assert.Equal(t, 2, app.player.Position())

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: 'h'}))
	assert.Equal(t, 1, app.player.Position())

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: 'G', Shift: true}))
	assert.True(t, app.player.Done())

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: 'g'}))
	assert.Equal(t, 0, app.player.Position())

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: 'q'}))
	select {
	case <-app.ctx.Done():
	default:
		t.Fatal("q did not cancel the app")
	}
}

func TestApp_PlayPauseAndSpeed(t *testing.T) {
	app, _ := newTestApp(t, "", WithInterval(100*time.Millisecond))

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: ' '}))
	assert.True(t, app.isPlaying())

	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: '+'}))
	assert.Equal(t, 50*time.Millisecond, app.currentInterval())
	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: '-'}))
	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: '-'}))
	assert.Equal(t, 200*time.Millisecond, app.currentInterval())

	// Manual stepping pauses playback.
	require.NoError(t, app.keyboard.HandleKey(KeyEvent{Key: 'l'}))
	assert.False(t, app.isPlaying())
}

func TestApp_TickStopsAtCompletion(t *testing.T) {
	app, _ := newTestApp(t, "", WithAutoplay(true))

	for i := 0; i < app.player.Len()+5; i++ {
		app.tick()
	}
	assert.True(t, app.player.Done())
	assert.False(t, app.isPlaying())

	// Playing again from the end restarts from the first step.
	app.togglePlay()
	assert.True(t, app.isPlaying())
	assert.Equal(t, 0, app.player.Position())
}

func TestApp_Render(t *testing.T) {
	app, screen := newTestApp(t, "")

	require.NoError(t, app.render())
	assert.Equal(t, 1, screen.shows)
	assert.Contains(t, screen.row(0), "Bubble Sort  step 1/")
}

func TestClampInterval(t *testing.T) {
	assert.Equal(t, minInterval, clampInterval(time.Nanosecond))
	assert.Equal(t, maxInterval, clampInterval(time.Hour))
	assert.Equal(t, time.Second, clampInterval(time.Second))
}

func TestReadKeyboardInput_ExitsOnEOF(t *testing.T) {
	app, _ := newTestApp(t, "q")

	done := make(chan struct{})
	go func() {
		app.readKeyboardInput()
		close(done)
	}()

	select {
	case event := <-app.inputChan:
		assert.Equal(t, KeyEvent{Key: 'q'}, event)
	case <-time.After(time.Second):
		t.Fatal("no key event received")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("input goroutine did not exit on EOF")
	}
}

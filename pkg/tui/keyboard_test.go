package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"empty", nil, KeyEvent{}},
		{"right arrow", []byte{27, '[', 'C'}, KeyEvent{IsSpecial: true, Special: "Right"}},
		{"left arrow", []byte{27, '[', 'D'}, KeyEvent{IsSpecial: true, Special: "Left"}},
		{"home", []byte{27, '[', 'H'}, KeyEvent{IsSpecial: true, Special: "Home"}},
		{"bare escape", []byte{27}, KeyEvent{IsSpecial: true, Special: "Escape"}},
		{"enter", []byte{13}, KeyEvent{IsSpecial: true, Special: "Enter"}},
		{"ctrl-c", []byte{3}, KeyEvent{Key: 'c', Ctrl: true}},
		{"space", []byte{' '}, KeyEvent{Key: ' '}},
		{"upper case", []byte{'G'}, KeyEvent{Key: 'G', Shift: true}},
		{"plus", []byte{'+'}, KeyEvent{Key: '+'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeyInput(tt.input))
		})
	}
}

func TestKeyboardHandler(t *testing.T) {
	kh := NewKeyboardHandler()

	var calls int
	handler := func(KeyEvent) error {
		calls++
		return nil
	}

	require.NoError(t, kh.RegisterBinding(KeyEvent{Key: 'x'}, handler, "x"))
	assert.Error(t, kh.RegisterBinding(KeyEvent{Key: 'x'}, handler, "again"))
	assert.Error(t, kh.RegisterBinding(KeyEvent{Key: 'y'}, nil, "nil"))

	require.NoError(t, kh.HandleKey(KeyEvent{Key: 'x'}))
	require.NoError(t, kh.HandleKey(KeyEvent{Key: 'z'}))
	require.NoError(t, kh.HandleKey(KeyEvent{Key: 'x', Ctrl: true}))
	assert.Equal(t, 1, calls)
	assert.Len(t, kh.GetBindings(), 1)
}

func TestKeyEventToString(t *testing.T) {
	assert.Equal(t, "Left", keyEventToString(KeyEvent{IsSpecial: true, Special: "Left"}))
	assert.Equal(t, "C-c", keyEventToString(KeyEvent{Key: 'c', Ctrl: true}))
	assert.Equal(t, "G", keyEventToString(KeyEvent{Key: 'G', Shift: true}))
}

package tui

import (
	"fmt"
	"sort"
	"sync"
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Key       rune   // The character pressed
	Ctrl      bool   // Ctrl modifier
	Shift     bool   // Shift modifier
	IsSpecial bool   // Whether this is a special key
	Special   string // Special key name (Enter, Escape, Left, etc.)
}

// KeyHandler is a function that handles a key event
type KeyHandler func(event KeyEvent) error

// KeyBinding represents a registered keybinding
type KeyBinding struct {
	Key     KeyEvent
	Handler KeyHandler
	Label   string // Description for help text
}

// KeyboardHandler dispatches key events to registered bindings.
type KeyboardHandler struct {
	mu       sync.RWMutex
	bindings map[string]*KeyBinding
}

// NewKeyboardHandler creates an empty keyboard handler.
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{bindings: make(map[string]*KeyBinding)}
}

// RegisterBinding binds key to handler. Binding the same key twice is an error.
func (kh *KeyboardHandler) RegisterBinding(key KeyEvent, handler KeyHandler, label string) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	kh.mu.Lock()
	defer kh.mu.Unlock()

	keyStr := keyEventToString(key)
	if _, exists := kh.bindings[keyStr]; exists {
		return fmt.Errorf("key %s is already bound", keyStr)
	}
	kh.bindings[keyStr] = &KeyBinding{Key: key, Handler: handler, Label: label}
	return nil
}

// HandleKey runs the handler bound to event. Unbound keys are ignored.
func (kh *KeyboardHandler) HandleKey(event KeyEvent) error {
	kh.mu.RLock()
	binding, exists := kh.bindings[keyEventToString(event)]
	kh.mu.RUnlock()

	if !exists {
		return nil
	}
	return binding.Handler(event)
}

// GetBindings returns all bindings sorted by key name.
func (kh *KeyboardHandler) GetBindings() []*KeyBinding {
	kh.mu.RLock()
	defer kh.mu.RUnlock()

	out := make([]*KeyBinding, 0, len(kh.bindings))
	for _, b := range kh.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return keyEventToString(out[i].Key) < keyEventToString(out[j].Key)
	})
	return out
}

// keyEventToString converts a KeyEvent to a string key for map lookup
func keyEventToString(event KeyEvent) string {
	if event.IsSpecial {
		if event.Ctrl {
			return "C-" + event.Special
		}
		return event.Special
	}

	if event.Ctrl {
		return "C-" + string(event.Key)
	}
	return string(event.Key)
}

// parseKeyInput converts raw bytes into a KeyEvent
func parseKeyInput(buf []byte) KeyEvent {
	if len(buf) == 0 {
		return KeyEvent{}
	}

	// Handle escape sequences (arrow keys, etc.)
	if buf[0] == 27 {
		if len(buf) > 2 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return KeyEvent{IsSpecial: true, Special: "Up"}
			case 'B':
				return KeyEvent{IsSpecial: true, Special: "Down"}
			case 'C':
				return KeyEvent{IsSpecial: true, Special: "Right"}
			case 'D':
				return KeyEvent{IsSpecial: true, Special: "Left"}
			case 'H':
				return KeyEvent{IsSpecial: true, Special: "Home"}
			case 'F':
				return KeyEvent{IsSpecial: true, Special: "End"}
			}
		}
		return KeyEvent{IsSpecial: true, Special: "Escape"}
	}

	// Handle special keys
	switch buf[0] {
	case 9: // Tab
		return KeyEvent{IsSpecial: true, Special: "Tab"}
	case 13: // Enter
		return KeyEvent{IsSpecial: true, Special: "Enter"}
	case 127: // Backspace
		return KeyEvent{IsSpecial: true, Special: "Backspace"}
	}

	// Handle Ctrl combinations
	if buf[0] < 32 {
		return KeyEvent{
			Key:  rune(buf[0] + 'a' - 1), // Convert to letter
			Ctrl: true,
		}
	}

	key := rune(buf[0])
	return KeyEvent{
		Key:   key,
		Shift: key >= 'A' && key <= 'Z',
	}
}

package execution

import (
	"sync"
	"time"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
)

// RunEventType categorizes run lifecycle events.
type RunEventType string

const (
	// EventRunStarted is emitted when the algorithm begins.
	EventRunStarted RunEventType = "run.started"
	// EventRunCompleted is emitted when a trace was produced.
	EventRunCompleted RunEventType = "run.completed"
	// EventRunFailed is emitted when a run stops without a trace.
	EventRunFailed RunEventType = "run.failed"
)

// RunEvent describes one lifecycle transition of a run.
type RunEvent struct {
	Type      RunEventType
	Timestamp time.Time
	RunID     types.RunID
	Algorithm types.AlgorithmTag
	Status    execution.Status
	// InputSize and StepCount mirror the run metadata at emission time.
	InputSize int
	StepCount int
	Error     error
}

// EventFilter restricts a subscription. Empty fields match everything.
type EventFilter struct {
	EventTypes []RunEventType
	Algorithms []types.AlgorithmTag
}

// Matches returns true if the event matches the filter criteria.
func (f *EventFilter) Matches(event RunEvent) bool {
	if len(f.EventTypes) > 0 && !contains(f.EventTypes, event.Type) {
		return false
	}
	if len(f.Algorithms) > 0 && !contains(f.Algorithms, event.Algorithm) {
		return false
	}
	return true
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

const subscriberBuffer = 64

type subscription struct {
	ch     chan RunEvent
	filter *EventFilter // nil means no filtering
}

// Monitor broadcasts run events to subscribers. Sends never block: an event
// is dropped for a subscriber whose buffer is full.
type Monitor struct {
	mu          sync.RWMutex
	subscribers []*subscription
	closed      bool
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Subscribe returns a channel that receives every event.
func (m *Monitor) Subscribe() <-chan RunEvent {
	return m.subscribe(nil)
}

// SubscribeFiltered returns a channel that receives only matching events.
func (m *Monitor) SubscribeFiltered(filter EventFilter) <-chan RunEvent {
	return m.subscribe(&filter)
}

func (m *Monitor) subscribe(filter *EventFilter) <-chan RunEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		ch := make(chan RunEvent)
		close(ch)
		return ch
	}

	ch := make(chan RunEvent, subscriberBuffer)
	m.subscribers = append(m.subscribers, &subscription{ch: ch, filter: filter})
	return ch
}

// Unsubscribe closes and removes a subscription.
func (m *Monitor) Unsubscribe(ch <-chan RunEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub.ch == ch {
			close(sub.ch)
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			return
		}
	}
}

// Emit sends event to all matching subscribers.
func (m *Monitor) Emit(event RunEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, sub := range m.subscribers {
		if sub.filter != nil && !sub.filter.Matches(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Close closes the monitor and all subscriber channels.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	for _, sub := range m.subscribers {
		close(sub.ch)
	}
	m.subscribers = nil
}

func eventFor(typ RunEventType, exec *execution.Execution) RunEvent {
	ev := RunEvent{
		Type:      typ,
		RunID:     exec.ID,
		Algorithm: exec.Algorithm,
		Status:    exec.Status,
		InputSize: exec.InputSize,
		StepCount: exec.StepCount,
	}
	if exec.Error != nil {
		ev.Error = exec.Error
	}
	return ev
}

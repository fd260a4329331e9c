package notify

import (
	"sync"
)

// Event says a task of the given type may be available. It exists so the
// server can skip waking workers whose type filters can't match; the signal
// actually delivered to a worker carries no task details at all.
type Event struct {
	TaskType string `json:"task_type"`
}

// Broadcast carries availability events between scheduler instances.
// A single-node deployment can use the in-memory implementation; multiple
// instances share signals via Redis pub/sub.
type Broadcast interface {
	Publish(evt *Event) error
	Subscribe() (<-chan *Event, error)
	Close() error
}

// Memory is an in-process Broadcast, also used in tests.
type Memory struct {
	mu   sync.Mutex
	subs []chan *Event
}

func NewMemoryBroadcast() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(evt *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- evt:
		default:
			// a subscriber that stopped draining doesn't get to block publishes
		}
	}
	return nil
}

func (m *Memory) Subscribe() (<-chan *Event, error) {
	ch := make(chan *Event, 64)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
	return nil
}

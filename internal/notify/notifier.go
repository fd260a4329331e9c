// Package notify pushes "try requesting now" signals to idle workers so new
// work is picked up immediately without busy-polling. Signals are advisory
// and carry no payload; a lost signal only costs latency until the worker's
// next poll.
package notify

import (
	"sync"
	"time"

	"github.com/driftline/dispatch/internal/metrics"
)

// Notifier fans availability events out to attached workers, debouncing per
// worker so a burst of new tasks yields a single signal.
type Notifier struct {
	bus      Broadcast
	debounce time.Duration

	mu    sync.Mutex
	conns map[*conn]struct{}
}

type conn struct {
	types  map[string]bool
	signal chan struct{}
	timer  *time.Timer
}

// NewNotifier subscribes to the given broadcast and starts fanning out.
func NewNotifier(bus Broadcast, debounce time.Duration) (*Notifier, error) {
	events, err := bus.Subscribe()
	if err != nil {
		return nil, err
	}
	n := &Notifier{
		bus:      bus,
		debounce: debounce,
		conns:    map[*conn]struct{}{},
	}
	go func() {
		for evt := range events {
			n.wake(evt)
		}
	}()
	return n, nil
}

// TaskAvailable announces that tasks of the given types became eligible.
func (n *Notifier) TaskAvailable(taskTypes ...string) {
	seen := map[string]bool{}
	for _, tt := range taskTypes {
		if seen[tt] {
			continue
		}
		seen[tt] = true
		// errors here are non-fatal: the broadcast is a latency optimisation
		n.bus.Publish(&Event{TaskType: tt})
	}
}

// Attach registers a worker connection interested in the given task types
// (empty means all). It returns the signal channel and a detach func.
func (n *Notifier) Attach(taskTypes []string) (<-chan struct{}, func()) {
	c := &conn{
		types:  map[string]bool{},
		signal: make(chan struct{}, 1),
	}
	for _, tt := range taskTypes {
		c.types[tt] = true
	}

	n.mu.Lock()
	n.conns[c] = struct{}{}
	n.mu.Unlock()
	metrics.WorkersConnected.Inc()

	detach := func() {
		n.mu.Lock()
		if _, ok := n.conns[c]; ok {
			delete(n.conns, c)
			if c.timer != nil {
				c.timer.Stop()
			}
			metrics.WorkersConnected.Dec()
		}
		n.mu.Unlock()
	}
	return c.signal, detach
}

// wake schedules one debounced signal per interested connection.
func (n *Notifier) wake(evt *Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for c := range n.conns {
		if len(c.types) > 0 && !c.types[evt.TaskType] {
			continue
		}
		if c.timer != nil {
			// a signal is already scheduled; this event rides along with it
			continue
		}
		c := c
		c.timer = time.AfterFunc(n.debounce, func() {
			n.mu.Lock()
			c.timer = nil
			n.mu.Unlock()
			select {
			case c.signal <- struct{}{}:
			default:
			}
		})
	}
}

// Close stops the notifier and the underlying broadcast.
func (n *Notifier) Close() error {
	n.mu.Lock()
	for c := range n.conns {
		if c.timer != nil {
			c.timer.Stop()
		}
	}
	n.conns = map[*conn]struct{}{}
	n.mu.Unlock()
	return n.bus.Close()
}

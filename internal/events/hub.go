package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"image-browser/internal/logging"
	"image-browser/internal/metrics"
	"image-browser/internal/watcher"
)

var log = logging.Named("events")

// ChangeEventName is the topic carrying filesystem change notifications.
const ChangeEventName = "fs://changed"

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 64

// Event is one message on a named topic.
type Event struct {
	Name    string    `json:"name"`
	Payload any       `json:"payload"`
	Time    time.Time `json:"time"`
}

// Subscription receives events for one topic until it is unsubscribed or
// the hub closes.
type Subscription struct {
	ID     string
	Name   string
	Events chan Event
	Done   chan struct{}

	closeOnce sync.Once
}

func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.Done) })
}

// Hub fans events out to subscribers by topic name. Delivery is best-effort:
// there is no replay, no persistence and no acknowledgment, and a
// subscriber whose buffer is full misses the event.
type Hub struct {
	buffer int

	mu     sync.RWMutex
	subs   map[string]*Subscription
	closed bool
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		buffer: buffer,
		subs:   make(map[string]*Subscription),
	}
}

// Subscribe registers interest in the named topic. After the hub is closed
// the returned subscription's Done channel is already closed.
func (h *Hub) Subscribe(name string) *Subscription {
	sub := &Subscription{
		ID:     uuid.NewString(),
		Name:   name,
		Events: make(chan Event, h.buffer),
		Done:   make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.close()
		return sub
	}
	h.subs[sub.ID] = sub

	log.Debug("subscriber %s joined %s (%d total)", sub.ID, name, len(h.subs))
	return sub
}

// Unsubscribe removes a subscription and closes its Done channel. Unknown
// IDs are ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok {
		sub.close()
		log.Debug("subscriber %s left %s", id, sub.Name)
	}
}

// Emit sends payload to every subscriber of name without blocking and
// returns how many received it.
func (h *Hub) Emit(name string, payload any) int {
	event := Event{Name: name, Payload: payload, Time: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var delivered, dropped int
	for _, sub := range h.subs {
		if sub.Name != name {
			continue
		}
		select {
		case sub.Events <- event:
			delivered++
		default:
			dropped++
		}
	}

	if delivered > 0 {
		metrics.HubEventsDelivered.WithLabelValues(name).Add(float64(delivered))
	}
	if dropped > 0 {
		metrics.HubEventsDropped.WithLabelValues(name).Add(float64(dropped))
		log.Debug("dropped %s for %d slow subscribers", name, dropped)
	}
	return delivered
}

// SubscriberCount returns the number of live subscriptions across topics.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription. Later Emits reach nobody.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]*Subscription)
	h.closed = true
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

// Sink adapts the hub to a watcher.Sink publishing on topic name. An event
// nobody receives counts as dropped.
func (h *Hub) Sink(name string) watcher.Sink {
	return watcher.SinkFunc(func(ev watcher.ChangeEvent) bool {
		return h.Emit(name, ev) > 0
	})
}

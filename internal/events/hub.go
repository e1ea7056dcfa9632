// Package events fans out per-user change notifications.
//
// A notification carries no payload beyond what changed; subscribers reload
// and re-derive their whole view when one arrives.
package events

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Kind names the collection that changed.
type Kind string

const (
	KindCategories Kind = "categories"
	KindEntries    Kind = "entries"
	KindSymptoms   Kind = "symptoms"
	KindNotes      Kind = "notes"
	KindHealth     Kind = "health"
)

// Change is a single notification.
type Change struct {
	UserID string    `json:"-"`
	Kind   Kind      `json:"kind"`
	At     time.Time `json:"at"`
}

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 8

var (
	published = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pocketbook",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Change notifications published, by kind.",
	}, []string{"kind"})

	dropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pocketbook",
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "Notifications dropped because a subscriber queue was full.",
	})

	subscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pocketbook",
		Subsystem: "events",
		Name:      "subscribers",
		Help:      "Currently open subscriptions.",
	})
)

// Collectors returns the hub metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{published, dropped, subscribers}
}

// Hub routes changes to the subscribers of the same user.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	buffer int
	closed bool
}

type subscription struct {
	ch chan Change
}

// NewHub creates a hub whose subscribers queue up to buffer notifications.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[string]map[*subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers for the user's changes. The returned cancel func
// unregisters and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Change, func()) {
	sub := &subscription{ch: make(chan Change, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()
	subscribers.Inc()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[userID][sub]; !ok {
				return
			}
			delete(h.subs[userID], sub)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(sub.ch)
			subscribers.Dec()
		})
	}
	return sub.ch, cancel
}

// Publish delivers c to every subscriber of c.UserID without blocking.
// A subscriber whose queue is full already has a reload pending, so the
// notification is dropped for it.
func (h *Hub) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	published.WithLabelValues(string(c.Kind)).Inc()
	for sub := range h.subs[c.UserID] {
		select {
		case sub.ch <- c:
		default:
			dropped.Inc()
		}
	}
}

// Notify is shorthand for Publish with the current time.
func (h *Hub) Notify(userID string, kind Kind) {
	h.Publish(Change{UserID: userID, Kind: kind})
}

// Subscribers returns the number of open subscriptions for a user.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

// Close closes every subscriber channel. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for userID, set := range h.subs {
		for sub := range set {
			close(sub.ch)
			subscribers.Dec()
		}
		delete(h.subs, userID)
	}
}

// Package events is the change-notification channel between the stores and
// their consumers. Delivery is fire-and-forget: a consumer that misses an
// event recovers by re-reading persisted state.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Kind identifies what changed
type Kind string

const (
	CartUpdated  Kind = "cart.updated"
	CartCleared  Kind = "cart.cleared"
	ThemeChanged Kind = "theme.changed"
)

// Event is a change notification. Scope and Hint are optional.
type Event struct {
	Kind   Kind      `json:"kind"`
	Scope  string    `json:"scope,omitempty"` // cart session id
	Hint   string    `json:"hint,omitempty"`  // affected product or theme id
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Publisher is implemented by anything events can be sent to
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Sink receives every event published on a bus, for forwarding outside the process
type Sink interface {
	Forward(ctx context.Context, event Event) error
}

const defaultBuffer = 16

// Bus fans events out to subscribers and sinks
type Bus struct {
	origin string
	logger logrus.FieldLogger

	mu     sync.RWMutex
	nextID int
	subs   map[int]*Subscription
	sinks  []Sink
}

// NewBus creates a bus with a fresh origin id
func NewBus(logger logrus.FieldLogger) *Bus {
	return &Bus{
		origin: uuid.NewString(),
		logger: logger,
		subs:   make(map[int]*Subscription),
	}
}

// Origin identifies this bus instance in forwarded events
func (b *Bus) Origin() string {
	return b.origin
}

// AddSink registers a forwarder for locally published events
func (b *Bus) AddSink(sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Subscribe registers a consumer for the given kinds, or for every kind when none is given
func (b *Bus) Subscribe(kinds ...Kind) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{
		id:    b.nextID,
		bus:   b,
		kinds: make(map[Kind]bool, len(kinds)),
		ch:    make(chan Event, defaultBuffer),
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}
	b.nextID++
	b.subs[sub.id] = sub
	return sub
}

// Publish stamps the event, delivers it to local subscribers and forwards it to sinks
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.Origin == "" {
		event.Origin = b.origin
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.deliver(event)

	b.mu.RLock()
	sinks := append([]Sink(nil), b.sinks...)
	b.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Forward(ctx, event); err != nil {
			b.logger.WithError(err).WithField("kind", event.Kind).Warn("Failed to forward event")
		}
	}
}

// Inject delivers an event received from another instance to local subscribers only
func (b *Bus) Inject(event Event) {
	if event.Origin == b.origin {
		return
	}
	b.deliver(event)
}

func (b *Bus) deliver(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if len(sub.kinds) > 0 && !sub.kinds[event.Kind] {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.logger.WithField("kind", event.Kind).Debug("Subscriber buffer full, dropping event")
		}
	}
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Subscription is one consumer's view of the bus
type Subscription struct {
	id    int
	bus   *Bus
	kinds map[Kind]bool
	ch    chan Event
	once  sync.Once
}

// C returns the delivery channel. It is closed by Close.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Close detaches the subscription from the bus
func (s *Subscription) Close() {
	s.once.Do(func() { s.bus.unsubscribe(s.id) })
}

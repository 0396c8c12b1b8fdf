// Package events provides the in-process dispatcher behind the engine's
// event-emission contract. The core publishes typed domain events after a
// successful commit; subscribers such as the audit log attach independently,
// keeping cross-cutting concerns out of the ledger itself.
package events

import (
	"context"
	"sync"

	"github.com/lifeline-hq/ledger/internal/core/domain"
)

// Handler consumes one published event. Handlers run synchronously on the
// publishing goroutine and must not block on external I/O.
type Handler func(ctx context.Context, event domain.Event)

// Publisher is the write side of the bus, injected into services.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// Bus is a minimal synchronous pub/sub dispatcher. Subscription is expected
// at startup; publishing is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	all      []Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a specific event name.
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// SubscribeAll registers a handler for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish dispatches the event to all matching handlers. Publishing never
// fails the calling operation; the event describes a commit that already
// happened.
func (b *Bus) Publish(ctx context.Context, event domain.Event) {
	b.mu.RLock()
	matched := b.handlers[event.EventName()]
	all := b.all
	b.mu.RUnlock()

	for _, h := range matched {
		h(ctx, event)
	}
	for _, h := range all {
		h(ctx, event)
	}
}

var _ Publisher = (*Bus)(nil)

// NopPublisher discards all events. Useful in tests and tools that do not
// care about the audit stream.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) {}

var _ Publisher = NopPublisher{}

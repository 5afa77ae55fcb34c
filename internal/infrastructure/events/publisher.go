// Package events provides the in-process domain event dispatcher and the
// handlers that forward events to the message broker.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/metrics"
)

// Registry implements repository.EventPublisher with an explicit map from
// event kind to handlers. No runtime type inspection: every event carries
// its kind tag.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]repository.EventHandler
}

// Compile-time verification that Registry implements
// repository.EventPublisher.
var _ repository.EventPublisher = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]repository.EventHandler),
	}
}

// Register adds a handler for the given event kind.
func (r *Registry) Register(kind string, handler repository.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = append(r.handlers[kind], handler)
}

// Publish invokes every handler registered for the event's kind in
// registration order. An event with no registered handler is a no-op.
// The first handler error aborts the publish and propagates.
func (r *Registry) Publish(ctx context.Context, event model.DomainEvent) error {
	r.mu.RLock()
	handlers := r.handlers[event.Kind()]
	r.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.DomainEventsPublishedTotal.WithLabelValues(event.Kind(), metrics.StatusError).Inc()
			return fmt.Errorf("handle %s event: %w", event.Kind(), err)
		}
	}

	metrics.DomainEventsPublishedTotal.WithLabelValues(event.Kind(), metrics.StatusSuccess).Inc()
	return nil
}

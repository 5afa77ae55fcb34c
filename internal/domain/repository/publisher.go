package repository

import (
	"context"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// EventHandler consumes one domain event.
type EventHandler func(ctx context.Context, event model.DomainEvent) error

// EventPublisher dispatches domain events to handlers registered by event
// kind. Publishing an event with no registered handler is a no-op, not an
// error. A handler error aborts the publish and propagates to the caller.
type EventPublisher interface {
	// Register adds a handler for the given event kind.
	// Registration happens at startup, before any Publish call.
	Register(kind string, handler EventHandler)

	// Publish invokes every handler registered for the event's kind, in
	// registration order.
	Publish(ctx context.Context, event model.DomainEvent) error
}

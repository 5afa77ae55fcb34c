package model

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds. Handlers are registered against these tags; dispatch never
// inspects concrete types.
const (
	EventKindVideoMediaUploaded = "video.media_uploaded"
)

// DomainEvent is an immutable fact raised by an aggregate during the current
// unit of work. Events are queued on the aggregate and dispatched at commit
// time, before the persistence flush.
type DomainEvent interface {
	// Kind returns the event's registry tag.
	Kind() string
	// OccurredOn returns the time the event was raised.
	OccurredOn() time.Time
}

// AggregateRoot is implemented by aggregates that raise domain events.
// The unit of work drains and clears pending events at commit time.
type AggregateRoot interface {
	PendingEvents() []DomainEvent
	ClearEvents()
}

// BaseAggregate carries the pending-event list shared by all aggregates.
// Events are kept in raise order.
type BaseAggregate struct {
	events []DomainEvent
}

// RaiseEvent appends an event to the pending list.
func (a *BaseAggregate) RaiseEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// PendingEvents returns the events raised since the last clear, in raise order.
func (a *BaseAggregate) PendingEvents() []DomainEvent {
	return a.events
}

// ClearEvents discards all pending events.
func (a *BaseAggregate) ClearEvents() {
	a.events = nil
}

// VideoMediaUploaded is raised when a video's primary media file is attached.
type VideoMediaUploaded struct {
	ResourceID uuid.UUID
	FilePath   string
	occurredOn time.Time
}

// NewVideoMediaUploaded creates the event with the current timestamp.
func NewVideoMediaUploaded(resourceID uuid.UUID, filePath string) VideoMediaUploaded {
	return VideoMediaUploaded{
		ResourceID: resourceID,
		FilePath:   filePath,
		occurredOn: time.Now(),
	}
}

func (e VideoMediaUploaded) Kind() string {
	return EventKindVideoMediaUploaded
}

func (e VideoMediaUploaded) OccurredOn() time.Time {
	return e.occurredOn
}

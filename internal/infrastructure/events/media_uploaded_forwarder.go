package events

import (
	"context"
	"fmt"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/queue"
)

// mediaUploadedPublisher is the slice of the queue client the forwarder
// needs. Satisfied by *queue.Client.
type mediaUploadedPublisher interface {
	PublishMediaUploaded(ctx context.Context, msg queue.MediaUploadedMessage) error
}

// NewMediaUploadedForwarder returns the handler that forwards
// VideoMediaUploaded events to the video-events exchange.
func NewMediaUploadedForwarder(publisher mediaUploadedPublisher) repository.EventHandler {
	return func(ctx context.Context, event model.DomainEvent) error {
		uploaded, ok := event.(model.VideoMediaUploaded)
		if !ok {
			return fmt.Errorf("unexpected event type for kind %s", event.Kind())
		}

		return publisher.PublishMediaUploaded(ctx, queue.MediaUploadedMessage{
			ResourceID: uploaded.ResourceID.String(),
			FilePath:   uploaded.FilePath,
			OccurredOn: uploaded.OccurredOn(),
		})
	}
}

package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// VideoCache is a read-through cache for video aggregates. Implementations
// own the serialization format.
type VideoCache interface {
	// Get returns the cached video, or nil, nil on a miss.
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// Set stores the video under the given TTL.
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error

	// Delete evicts the video. Evicting an absent entry is a no-op.
	Delete(ctx context.Context, videoID uuid.UUID) error
}

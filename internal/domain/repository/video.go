package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// VideoRepository defines persistence for the Video aggregate, relation
// sets included. Implementations are provided by the infrastructure layer.
type VideoRepository interface {
	// Insert persists a new video with its relation sets.
	// Returns ErrDuplicateID if the ID already exists.
	Insert(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video and its relation sets.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// Update persists scalar fields, media slots and relation sets of an
	// existing video. Returns ErrVideoNotFound if the video does not exist.
	Update(ctx context.Context, video *model.Video) error

	// Delete removes the video and its relation rows.
	// Returns ErrVideoNotFound if the video does not exist.
	Delete(ctx context.Context, video *model.Video) error

	// Search returns one page of videos matching the query.
	Search(ctx context.Context, query SearchQuery) (SearchResult[*model.Video], error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// GenreRepository defines persistence for the Genre aggregate and its
// category relation set.
type GenreRepository interface {
	// Insert persists a new genre with its category relations.
	Insert(ctx context.Context, genre *model.Genre) error

	// GetByID retrieves a genre and its category relations.
	// Returns ErrGenreNotFound if the genre does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)

	// Update persists changes to an existing genre and its relations.
	Update(ctx context.Context, genre *model.Genre) error

	// Delete removes the genre and its relation rows.
	Delete(ctx context.Context, genre *model.Genre) error

	// ExistingIDs returns the subset of ids that exist, in one round trip.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// GetByIDs retrieves the genres for the given ids, skipping ids that
	// do not exist. Used to resolve display names in projections.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Genre, error)

	// Search returns one page of genres matching the query.
	Search(ctx context.Context, query SearchQuery) (SearchResult[*model.Genre], error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// CategoryRepository defines persistence for the Category aggregate.
type CategoryRepository interface {
	// Insert persists a new category.
	Insert(ctx context.Context, category *model.Category) error

	// GetByID retrieves a category.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Update persists changes to an existing category.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes the category.
	Delete(ctx context.Context, category *model.Category) error

	// ExistingIDs returns the subset of ids that exist, in one round trip.
	// Used to validate relation sets without N queries.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// GetByIDs retrieves the categories for the given ids, skipping ids
	// that do not exist. Used to resolve display names in projections.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Category, error)

	// Search returns one page of categories matching the query.
	Search(ctx context.Context, query SearchQuery) (SearchResult[*model.Category], error)
}

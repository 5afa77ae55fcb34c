package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// CastMemberRepository defines persistence for the CastMember aggregate.
type CastMemberRepository interface {
	// Insert persists a new cast member.
	Insert(ctx context.Context, member *model.CastMember) error

	// GetByID retrieves a cast member.
	// Returns ErrCastMemberNotFound if the cast member does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error)

	// Update persists changes to an existing cast member.
	Update(ctx context.Context, member *model.CastMember) error

	// Delete removes the cast member.
	Delete(ctx context.Context, member *model.CastMember) error

	// ExistingIDs returns the subset of ids that exist, in one round trip.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// Search returns one page of cast members matching the query.
	Search(ctx context.Context, query SearchQuery) (SearchResult[*model.CastMember], error)
}

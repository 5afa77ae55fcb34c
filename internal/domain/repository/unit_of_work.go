package repository

import (
	"context"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// UnitOfWork is the transactional boundary of one request. Repositories
// obtained from it write through the same transaction. Commit dispatches the
// pending domain events of every registered aggregate (registration order,
// then raise order), clears them, and only then commits the transaction; a
// handler failure rolls the transaction back and the store stays untouched.
type UnitOfWork interface {
	Videos() VideoRepository
	Categories() CategoryRepository
	Genres() GenreRepository
	CastMembers() CastMemberRepository

	// Register tracks an aggregate whose pending events must be dispatched
	// at commit time.
	Register(root model.AggregateRoot)

	// Commit publishes pending events, clears them and commits the
	// transaction.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Safe to call after Commit.
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory opens a new unit of work per request.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

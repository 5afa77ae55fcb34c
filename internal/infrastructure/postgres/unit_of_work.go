package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// txBeginner abstracts pgxpool.Pool transaction opening for testability.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWorkFactory opens pgx-transaction-backed units of work.
type UnitOfWorkFactory struct {
	db        txBeginner
	publisher repository.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory instance.
func NewUnitOfWorkFactory(db txBeginner, publisher repository.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, publisher: publisher}
}

// Compile-time verification that UnitOfWorkFactory implements
// repository.UnitOfWorkFactory.
var _ repository.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// Begin opens a transaction and binds the repositories to it.
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := f.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &unitOfWork{
		tx:          tx,
		publisher:   f.publisher,
		videos:      NewVideoRepository(tx),
		categories:  NewCategoryRepository(tx),
		genres:      NewGenreRepository(tx),
		castMembers: NewCastMemberRepository(tx),
	}, nil
}

// unitOfWork implements repository.UnitOfWork over one pgx transaction.
// Registered aggregates have their pending events dispatched at commit time
// in registration order, then raise order.
type unitOfWork struct {
	tx          pgx.Tx
	publisher   repository.EventPublisher
	videos      *VideoRepository
	categories  *CategoryRepository
	genres      *GenreRepository
	castMembers *CastMemberRepository
	registered  []model.AggregateRoot
	done        bool
}

var _ repository.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Videos() repository.VideoRepository { return u.videos }

func (u *unitOfWork) Categories() repository.CategoryRepository { return u.categories }

func (u *unitOfWork) Genres() repository.GenreRepository { return u.genres }

func (u *unitOfWork) CastMembers() repository.CastMemberRepository { return u.castMembers }

// Register tracks an aggregate whose pending events must be dispatched at
// commit time. Registering the same aggregate twice dispatches its events
// once: events are cleared after the first dispatch.
func (u *unitOfWork) Register(root model.AggregateRoot) {
	u.registered = append(u.registered, root)
}

// Commit dispatches pending domain events through the publisher and then
// commits the transaction. A handler failure rolls the transaction back so
// the store and the outside world stay consistent: no broker message without
// a committed row, no committed row without the broker message.
func (u *unitOfWork) Commit(ctx context.Context) error {
	for _, root := range u.registered {
		for _, event := range root.PendingEvents() {
			if err := u.publisher.Publish(ctx, event); err != nil {
				_ = u.Rollback(ctx)
				return fmt.Errorf("failed to publish domain event: %w", err)
			}
		}
		root.ClearEvents()
	}

	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.done = true
	return nil
}

// Rollback discards the transaction. Safe to call after Commit, which lets
// callers defer it unconditionally.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

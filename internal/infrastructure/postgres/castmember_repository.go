package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// CastMemberRepository implements repository.CastMemberRepository using
// PostgreSQL.
type CastMemberRepository struct {
	db DBTX
}

// NewCastMemberRepository creates a new CastMemberRepository instance.
func NewCastMemberRepository(db DBTX) *CastMemberRepository {
	return &CastMemberRepository{db: db}
}

// Compile-time verification that CastMemberRepository implements
// repository.CastMemberRepository.
var _ repository.CastMemberRepository = (*CastMemberRepository)(nil)

const castMemberColumns = "id, name, type, created_at"

// Insert persists a new cast member.
func (r *CastMemberRepository) Insert(ctx context.Context, member *model.CastMember) error {
	const query = `
		INSERT INTO cast_members (` + castMemberColumns + `)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.Name,
		member.Type.String(),
		member.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert cast member: %w", err)
	}

	return nil
}

// GetByID retrieves a cast member.
func (r *CastMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	const query = `SELECT ` + castMemberColumns + ` FROM cast_members WHERE id = $1`

	member, err := scanCastMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("failed to get cast member by ID: %w", err)
	}

	return member, nil
}

// Update persists changes to an existing cast member.
func (r *CastMemberRepository) Update(ctx context.Context, member *model.CastMember) error {
	const query = `
		UPDATE cast_members
		SET name = $2, type = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, member.ID, member.Name, member.Type.String())
	if err != nil {
		return fmt.Errorf("failed to update cast member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCastMemberNotFound
	}

	return nil
}

// Delete removes the cast member.
func (r *CastMemberRepository) Delete(ctx context.Context, member *model.CastMember) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM cast_members WHERE id = $1", member.ID)
	if err != nil {
		return fmt.Errorf("failed to delete cast member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCastMemberNotFound
	}

	return nil
}

// ExistingIDs returns the subset of ids that exist, in one round trip.
func (r *CastMemberRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	existing, err := queryIDs(ctx, r.db, "SELECT id FROM cast_members WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cast members: %w", err)
	}
	return existing, nil
}

// Search returns one page of cast members matching the query.
func (r *CastMemberRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.CastMember], error) {
	query = query.Normalize()
	result := repository.SearchResult[*model.CastMember]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}

	where := ""
	args := []any{}
	if query.Term != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+query.Term+"%")
	}

	countSQL := "SELECT COUNT(*) FROM cast_members " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count cast members: %w", err)
	}

	orderBy := sortClause(query, map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}, "name")

	pageSQL := fmt.Sprintf(
		"SELECT %s FROM cast_members %s ORDER BY %s LIMIT $%d OFFSET $%d",
		castMemberColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, query.PerPage, query.Offset())

	rows, err := r.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return result, fmt.Errorf("failed to query cast members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		member, err := scanCastMember(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan cast member: %w", err)
		}
		result.Items = append(result.Items, member)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("error iterating cast members: %w", err)
	}

	return result, nil
}

func scanCastMember(row pgx.Row) (*model.CastMember, error) {
	var (
		member     model.CastMember
		memberType string
	)
	err := row.Scan(
		&member.ID,
		&member.Name,
		&memberType,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	member.Type = model.CastMemberType(memberType)
	return &member, nil
}

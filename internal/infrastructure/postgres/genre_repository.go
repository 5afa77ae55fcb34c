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

// GenreRepository implements repository.GenreRepository using PostgreSQL.
type GenreRepository struct {
	db DBTX
}

// NewGenreRepository creates a new GenreRepository instance.
func NewGenreRepository(db DBTX) *GenreRepository {
	return &GenreRepository{db: db}
}

// Compile-time verification that GenreRepository implements
// repository.GenreRepository.
var _ repository.GenreRepository = (*GenreRepository)(nil)

const genreColumns = "id, name, is_active, created_at"

// Insert persists a new genre with its category relations.
func (r *GenreRepository) Insert(ctx context.Context, genre *model.Genre) error {
	const query = `
		INSERT INTO genres (` + genreColumns + `)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.IsActive,
		genre.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert genre: %w", err)
	}

	return r.replaceCategoryRelations(ctx, genre)
}

// GetByID retrieves a genre and its category relations.
func (r *GenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	const query = `SELECT ` + genreColumns + ` FROM genres WHERE id = $1`

	genre, err := scanGenre(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by ID: %w", err)
	}

	if err := r.loadCategoryRelations(ctx, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

// Update persists changes to an existing genre and its relations.
func (r *GenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	const query = `
		UPDATE genres
		SET name = $2, is_active = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrGenreNotFound
	}

	return r.replaceCategoryRelations(ctx, genre)
}

// Delete removes the genre and its relation rows.
func (r *GenreRepository) Delete(ctx context.Context, genre *model.Genre) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM genre_categories WHERE genre_id = $1", genre.ID); err != nil {
		return fmt.Errorf("failed to delete genre relations: %w", err)
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM genres WHERE id = $1", genre.ID)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrGenreNotFound
	}

	return nil
}

// ExistingIDs returns the subset of ids that exist, in one round trip.
func (r *GenreRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	existing, err := queryIDs(ctx, r.db, "SELECT id FROM genres WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing genres: %w", err)
	}
	return existing, nil
}

// GetByIDs retrieves the genres for the given ids, skipping ids that do not
// exist. Relation sets are not loaded for projections.
func (r *GenreRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT ` + genreColumns + ` FROM genres WHERE id = ANY($1) ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres by ids: %w", err)
	}
	defer rows.Close()

	var genres []*model.Genre
	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}

// Search returns one page of genres matching the query.
func (r *GenreRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Genre], error) {
	query = query.Normalize()
	result := repository.SearchResult[*model.Genre]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}

	where := ""
	args := []any{}
	if query.Term != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+query.Term+"%")
	}

	countSQL := "SELECT COUNT(*) FROM genres " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count genres: %w", err)
	}

	orderBy := sortClause(query, map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}, "name")

	pageSQL := fmt.Sprintf(
		"SELECT %s FROM genres %s ORDER BY %s LIMIT $%d OFFSET $%d",
		genreColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, query.PerPage, query.Offset())

	rows, err := r.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return result, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan genre: %w", err)
		}
		result.Items = append(result.Items, genre)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("error iterating genres: %w", err)
	}

	return result, nil
}

func (r *GenreRepository) replaceCategoryRelations(ctx context.Context, genre *model.Genre) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM genre_categories WHERE genre_id = $1", genre.ID); err != nil {
		return fmt.Errorf("failed to clear genre_categories: %w", err)
	}
	for _, id := range genre.CategoryIDs() {
		if _, err := r.db.Exec(ctx, "INSERT INTO genre_categories (genre_id, category_id) VALUES ($1, $2)", genre.ID, id); err != nil {
			return fmt.Errorf("failed to insert into genre_categories: %w", err)
		}
	}
	return nil
}

func (r *GenreRepository) loadCategoryRelations(ctx context.Context, genre *model.Genre) error {
	ids, err := queryIDs(ctx, r.db, "SELECT category_id FROM genre_categories WHERE genre_id = $1", genre.ID)
	if err != nil {
		return fmt.Errorf("failed to load genre relations: %w", err)
	}
	for _, id := range ids {
		genre.AddCategoryID(id)
	}
	return nil
}

func scanGenre(row pgx.Row) (*model.Genre, error) {
	var genre model.Genre
	err := row.Scan(
		&genre.ID,
		&genre.Name,
		&genre.IsActive,
		&genre.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

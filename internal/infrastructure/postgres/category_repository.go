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

// CategoryRepository implements repository.CategoryRepository using
// PostgreSQL.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Compile-time verification that CategoryRepository implements
// repository.CategoryRepository.
var _ repository.CategoryRepository = (*CategoryRepository)(nil)

const categoryColumns = "id, name, description, is_active, created_at"

// Insert persists a new category.
func (r *CategoryRepository) Insert(ctx context.Context, category *model.Category) error {
	const query = `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.IsActive,
		category.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return category, nil
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	const query = `
		UPDATE categories
		SET name = $2, description = $3, is_active = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// Delete removes the category.
func (r *CategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", category.ID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// ExistingIDs returns the subset of ids that exist, in one round trip.
func (r *CategoryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	existing, err := queryIDs(ctx, r.db, "SELECT id FROM categories WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing categories: %w", err)
	}
	return existing, nil
}

// GetByIDs retrieves the categories for the given ids, skipping ids that do
// not exist.
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ANY($1) ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by ids: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Search returns one page of categories matching the query.
func (r *CategoryRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Category], error) {
	query = query.Normalize()
	result := repository.SearchResult[*model.Category]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}

	where := ""
	args := []any{}
	if query.Term != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+query.Term+"%")
	}

	countSQL := "SELECT COUNT(*) FROM categories " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count categories: %w", err)
	}

	orderBy := sortClause(query, map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}, "name")

	pageSQL := fmt.Sprintf(
		"SELECT %s FROM categories %s ORDER BY %s LIMIT $%d OFFSET $%d",
		categoryColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, query.PerPage, query.Offset())

	rows, err := r.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return result, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan category: %w", err)
		}
		result.Items = append(result.Items, category)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("error iterating categories: %w", err)
	}

	return result, nil
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var category model.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.IsActive,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

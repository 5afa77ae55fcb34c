package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// CreateGenreInput contains the input parameters for creating a genre.
type CreateGenreInput struct {
	Name        string
	CategoryIDs []uuid.UUID
}

// GenreService defines the genre business logic operations.
type GenreService interface {
	CreateGenre(ctx context.Context, input CreateGenreInput) (*model.Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error
	ListGenres(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Genre], error)
}

type genreService struct {
	repo         repository.GenreRepository
	categoryRepo repository.CategoryRepository
}

// NewGenreService creates a new GenreService instance.
func NewGenreService(repo repository.GenreRepository, categoryRepo repository.CategoryRepository) GenreService {
	return &genreService{repo: repo, categoryRepo: categoryRepo}
}

// CreateGenre validates the referenced category IDs with a single bulk
// existence check before persisting.
func (s *genreService) CreateGenre(ctx context.Context, input CreateGenreInput) (*model.Genre, error) {
	genre, err := model.NewGenre(input.Name)
	if err != nil {
		return nil, err
	}

	if len(input.CategoryIDs) > 0 {
		existing, err := s.categoryRepo.ExistingIDs(ctx, input.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("check existing category ids: %w", err)
		}
		if missing := missingIDs(input.CategoryIDs, existing); len(missing) > 0 {
			return nil, &RelatedAggregateNotFoundError{Aggregate: "category", MissingIDs: missing}
		}
		for _, id := range input.CategoryIDs {
			genre.AddCategoryID(id)
		}
	}

	if err := s.repo.Insert(ctx, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

func (s *genreService) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, genre)
}

func (s *genreService) ListGenres(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Genre], error) {
	return s.repo.Search(ctx, query.Normalize())
}

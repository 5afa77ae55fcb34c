package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// CreateCategoryInput contains the input parameters for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines the category business logic operations.
type CategoryService interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Category], error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	category, err := model.NewCategory(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, category)
}

func (s *categoryService) ListCategories(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Category], error) {
	return s.repo.Search(ctx, query.Normalize())
}

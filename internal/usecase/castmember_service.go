package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// CreateCastMemberInput contains the input parameters for creating a cast
// member.
type CreateCastMemberInput struct {
	Name string
	Type model.CastMemberType
}

// CastMemberService defines the cast member business logic operations.
type CastMemberService interface {
	CreateCastMember(ctx context.Context, input CreateCastMemberInput) (*model.CastMember, error)
	GetCastMember(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	DeleteCastMember(ctx context.Context, id uuid.UUID) error
	ListCastMembers(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.CastMember], error)
}

type castMemberService struct {
	repo repository.CastMemberRepository
}

// NewCastMemberService creates a new CastMemberService instance.
func NewCastMemberService(repo repository.CastMemberRepository) CastMemberService {
	return &castMemberService{repo: repo}
}

func (s *castMemberService) CreateCastMember(ctx context.Context, input CreateCastMemberInput) (*model.CastMember, error) {
	member, err := model.NewCastMember(input.Name, input.Type)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *castMemberService) GetCastMember(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *castMemberService) DeleteCastMember(ctx context.Context, id uuid.UUID) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, member)
}

func (s *castMemberService) ListCastMembers(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.CastMember], error) {
	return s.repo.Search(ctx, query.Normalize())
}

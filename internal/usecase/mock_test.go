package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	insertFn  func(ctx context.Context, video *model.Video) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	updateFn  func(ctx context.Context, video *model.Video) error
	deleteFn  func(ctx context.Context, video *model.Video) error
	searchFn  func(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error)
}

func (m *mockVideoRepository) Insert(ctx context.Context, video *model.Video) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, video *model.Video) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return repository.SearchResult[*model.Video]{}, nil
}

// mockCategoryRepository provides a configurable mock for CategoryRepository.
type mockCategoryRepository struct {
	insertFn      func(ctx context.Context, category *model.Category) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Category, error)
	updateFn      func(ctx context.Context, category *model.Category) error
	deleteFn      func(ctx context.Context, category *model.Category) error
	existingIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	getByIDsFn    func(ctx context.Context, ids []uuid.UUID) ([]*model.Category, error)
	searchFn      func(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Category], error)
}

func (m *mockCategoryRepository) Insert(ctx context.Context, category *model.Category) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existingIDsFn != nil {
		return m.existingIDsFn(ctx, ids)
	}
	return ids, nil
}

func (m *mockCategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Category, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockCategoryRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Category], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return repository.SearchResult[*model.Category]{}, nil
}

// mockGenreRepository provides a configurable mock for GenreRepository.
type mockGenreRepository struct {
	insertFn      func(ctx context.Context, genre *model.Genre) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	updateFn      func(ctx context.Context, genre *model.Genre) error
	deleteFn      func(ctx context.Context, genre *model.Genre) error
	existingIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	getByIDsFn    func(ctx context.Context, ids []uuid.UUID) ([]*model.Genre, error)
	searchFn      func(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Genre], error)
}

func (m *mockGenreRepository) Insert(ctx context.Context, genre *model.Genre) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, genre)
	}
	return nil
}

func (m *mockGenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrGenreNotFound
}

func (m *mockGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, genre)
	}
	return nil
}

func (m *mockGenreRepository) Delete(ctx context.Context, genre *model.Genre) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, genre)
	}
	return nil
}

func (m *mockGenreRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existingIDsFn != nil {
		return m.existingIDsFn(ctx, ids)
	}
	return ids, nil
}

func (m *mockGenreRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Genre, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockGenreRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Genre], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return repository.SearchResult[*model.Genre]{}, nil
}

// mockCastMemberRepository provides a configurable mock for
// CastMemberRepository.
type mockCastMemberRepository struct {
	insertFn      func(ctx context.Context, member *model.CastMember) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	updateFn      func(ctx context.Context, member *model.CastMember) error
	deleteFn      func(ctx context.Context, member *model.CastMember) error
	existingIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	searchFn      func(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.CastMember], error)
}

func (m *mockCastMemberRepository) Insert(ctx context.Context, member *model.CastMember) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, member)
	}
	return nil
}

func (m *mockCastMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCastMemberNotFound
}

func (m *mockCastMemberRepository) Update(ctx context.Context, member *model.CastMember) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, member)
	}
	return nil
}

func (m *mockCastMemberRepository) Delete(ctx context.Context, member *model.CastMember) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, member)
	}
	return nil
}

func (m *mockCastMemberRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existingIDsFn != nil {
		return m.existingIDsFn(ctx, ids)
	}
	return ids, nil
}

func (m *mockCastMemberRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.CastMember], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return repository.SearchResult[*model.CastMember]{}, nil
}

// mockFileStorage provides a configurable mock for FileStorage.
type mockFileStorage struct {
	uploadFn               func(ctx context.Context, fileName string, reader io.Reader, contentType string) (string, error)
	deleteFn               func(ctx context.Context, filePath string) error
	presignedDownloadURLFn func(ctx context.Context, filePath string, expiry time.Duration) (string, error)
}

func (m *mockFileStorage) Upload(ctx context.Context, fileName string, reader io.Reader, contentType string) (string, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, fileName, reader, contentType)
	}
	return fileName, nil
}

func (m *mockFileStorage) Delete(ctx context.Context, filePath string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, filePath)
	}
	return nil
}

func (m *mockFileStorage) PresignedDownloadURL(ctx context.Context, filePath string, expiry time.Duration) (string, error) {
	if m.presignedDownloadURLFn != nil {
		return m.presignedDownloadURLFn(ctx, filePath, expiry)
	}
	return "http://example.com/download/" + filePath, nil
}

// mockUnitOfWork provides a configurable mock for UnitOfWork. The bound
// repositories default to the shared mocks passed at construction.
type mockUnitOfWork struct {
	videos      repository.VideoRepository
	categories  repository.CategoryRepository
	genres      repository.GenreRepository
	castMembers repository.CastMemberRepository

	registered []model.AggregateRoot
	commitFn   func(ctx context.Context) error
	committed  bool
	rolledBack bool
}

func (m *mockUnitOfWork) Videos() repository.VideoRepository { return m.videos }

func (m *mockUnitOfWork) Categories() repository.CategoryRepository { return m.categories }

func (m *mockUnitOfWork) Genres() repository.GenreRepository { return m.genres }

func (m *mockUnitOfWork) CastMembers() repository.CastMemberRepository { return m.castMembers }

func (m *mockUnitOfWork) Register(root model.AggregateRoot) {
	m.registered = append(m.registered, root)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	if m.commitFn != nil {
		return m.commitFn(ctx)
	}
	m.committed = true
	return nil
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	m.rolledBack = true
	return nil
}

// mockUnitOfWorkFactory hands out the same mock unit of work per Begin.
type mockUnitOfWorkFactory struct {
	uow     *mockUnitOfWork
	beginFn func(ctx context.Context) (repository.UnitOfWork, error)
}

func (m *mockUnitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if m.beginFn != nil {
		return m.beginFn(ctx)
	}
	return m.uow, nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// FileInput carries an uploaded file payload through the use-case layer.
type FileInput struct {
	Reader      io.Reader
	Extension   string
	ContentType string
}

// CreateVideoInput contains the input parameters for creating a video.
type CreateVideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     float64
	Rating       model.Rating

	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
}

// VideoService defines the video business logic operations.
type VideoService interface {
	// CreateVideo validates and persists a new video.
	CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error)

	// GetVideo retrieves a video by ID.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// UpdateVideo applies scalar, relation and image updates atomically.
	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error)

	// UploadMedias attaches the primary media and/or trailer binaries.
	UploadMedias(ctx context.Context, input UploadMediasInput) error

	// DeleteVideo removes a video and best-effort deletes its stored files.
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error

	// GetMediaDownloadURL returns a presigned download URL for one of the
	// video's media slots ("media", "trailer", "thumb", "thumbhalf",
	// "banner").
	GetMediaDownloadURL(ctx context.Context, videoID uuid.UUID, field string, expiry time.Duration) (string, error)

	// ListVideos returns one page of videos.
	ListVideos(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error)
}

type videoService struct {
	videoRepo      repository.VideoRepository
	categoryRepo   repository.CategoryRepository
	genreRepo      repository.GenreRepository
	castMemberRepo repository.CastMemberRepository
	storage        repository.FileStorage
	uowFactory     repository.UnitOfWorkFactory
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	videoRepo repository.VideoRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	castMemberRepo repository.CastMemberRepository,
	storage repository.FileStorage,
	uowFactory repository.UnitOfWorkFactory,
) VideoService {
	return &videoService{
		videoRepo:      videoRepo,
		categoryRepo:   categoryRepo,
		genreRepo:      genreRepo,
		castMemberRepo: castMemberRepo,
		storage:        storage,
		uowFactory:     uowFactory,
	}
}

// CreateVideo validates the new aggregate and its relation sets, then
// persists through a unit of work.
func (s *videoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	video := model.NewVideo(
		input.Title,
		input.Description,
		input.YearLaunched,
		input.Opened,
		input.Published,
		input.Duration,
		input.Rating,
	)

	notification := model.NewNotification()
	video.Validate(notification)
	if notification.HasErrors() {
		return nil, &EntityValidationError{Violations: notification.Errors()}
	}

	if err := s.applyRelations(ctx, video, input.GenreIDs, input.CategoryIDs, input.CastMemberIDs); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}

	if err := uow.Videos().Insert(ctx, video); err != nil {
		_ = uow.Rollback(ctx)
		return nil, fmt.Errorf("insert video: %w", err)
	}

	uow.Register(video)
	if err := uow.Commit(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return nil, fmt.Errorf("commit video creation: %w", err)
	}

	return video, nil
}

// GetVideo retrieves a video by ID.
func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return s.videoRepo.GetByID(ctx, videoID)
}

// DeleteVideo removes a video from the store, then deletes its stored media
// files. File deletion is best effort: the row is already gone and an orphan
// in the object store is preferable to a dangling catalog entry.
func (s *videoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	if err := uow.Videos().Delete(ctx, video); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("delete video: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("commit video deletion: %w", err)
	}

	for _, path := range storedFilePaths(video) {
		if err := s.storage.Delete(context.WithoutCancel(ctx), path); err != nil {
			slog.Warn("failed to delete stored file for removed video",
				"video_id", videoID,
				"path", path,
				"error", err,
			)
		}
	}

	return nil
}

// ListVideos returns one page of videos.
func (s *videoService) ListVideos(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error) {
	return s.videoRepo.Search(ctx, query.Normalize())
}

// applyRelations validates and applies the three relation-ID collections.
// A nil collection leaves the current set unchanged; an empty one clears it;
// a non-empty one replaces it wholesale after a single bulk existence check
// per relation kind. The clear happens before validation: on failure the
// in-memory aggregate is discarded, so the emptied set is never observable.
func (s *videoService) applyRelations(ctx context.Context, video *model.Video, genreIDs, categoryIDs, castMemberIDs []uuid.UUID) error {
	if genreIDs != nil {
		video.RemoveAllGenreIDs()
		if len(genreIDs) > 0 {
			if err := s.checkExisting(ctx, "genre", genreIDs, s.genreRepo.ExistingIDs); err != nil {
				return err
			}
			for _, id := range genreIDs {
				video.AddGenreID(id)
			}
		}
	}

	if categoryIDs != nil {
		video.RemoveAllCategoryIDs()
		if len(categoryIDs) > 0 {
			if err := s.checkExisting(ctx, "category", categoryIDs, s.categoryRepo.ExistingIDs); err != nil {
				return err
			}
			for _, id := range categoryIDs {
				video.AddCategoryID(id)
			}
		}
	}

	if castMemberIDs != nil {
		video.RemoveAllCastMemberIDs()
		if len(castMemberIDs) > 0 {
			if err := s.checkExisting(ctx, "cast member", castMemberIDs, s.castMemberRepo.ExistingIDs); err != nil {
				return err
			}
			for _, id := range castMemberIDs {
				video.AddCastMemberID(id)
			}
		}
	}

	return nil
}

func (s *videoService) checkExisting(ctx context.Context, aggregate string, ids []uuid.UUID, existingFn func(context.Context, []uuid.UUID) ([]uuid.UUID, error)) error {
	existing, err := existingFn(ctx, ids)
	if err != nil {
		return fmt.Errorf("check existing %s ids: %w", aggregate, err)
	}
	if missing := missingIDs(ids, existing); len(missing) > 0 {
		return &RelatedAggregateNotFoundError{Aggregate: aggregate, MissingIDs: missing}
	}
	return nil
}

// cleanupUploads deletes files uploaded earlier in a failed orchestration.
// Runs on a cancellation-detached context: orphaning large media files in
// the object store costs more than finishing a few deletes.
func (s *videoService) cleanupUploads(ctx context.Context, paths []string) {
	ctx = context.WithoutCancel(ctx)
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			slog.Warn("failed to delete uploaded file during rollback",
				"path", path,
				"error", err,
			)
		}
	}
}

func storedFilePaths(video *model.Video) []string {
	var paths []string
	if video.Thumb != nil {
		paths = append(paths, video.Thumb.Path)
	}
	if video.ThumbHalf != nil {
		paths = append(paths, video.ThumbHalf.Path)
	}
	if video.Banner != nil {
		paths = append(paths, video.Banner.Path)
	}
	if video.Media != nil {
		paths = append(paths, video.Media.FilePath)
	}
	if video.Trailer != nil {
		paths = append(paths, video.Trailer.FilePath)
	}
	return paths
}

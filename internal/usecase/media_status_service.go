package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/cache"
)

// MediaStatusService applies encoder results to a video's primary media.
// It is driven by the worker consuming encoder completion messages; the
// encoder itself is an external system reached through the broker.
type MediaStatusService struct {
	videoRepo  repository.VideoRepository
	videoCache cache.VideoCache
}

// NewMediaStatusService creates a new MediaStatusService.
func NewMediaStatusService(videoRepo repository.VideoRepository, videoCache cache.VideoCache) *MediaStatusService {
	return &MediaStatusService{
		videoRepo:  videoRepo,
		videoCache: videoCache,
	}
}

// MarkAsProcessing transitions the primary media to PROCESSING when the
// encoder picks the file up.
func (s *MediaStatusService) MarkAsProcessing(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if err := video.MarkMediaAsProcessing(); err != nil {
		return err
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return fmt.Errorf("update video media status: %w", err)
	}

	s.invalidate(ctx, videoID)
	return nil
}

// CompleteEncoding transitions the primary media to COMPLETED with the
// encoded path and invalidates the cached projection. A media still in
// PENDING is stepped through PROCESSING first: some encoders only report
// completion.
func (s *MediaStatusService) CompleteEncoding(ctx context.Context, videoID uuid.UUID, encodedPath string) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if video.Media != nil && video.Media.Status == model.MediaStatusPending {
		if err := video.MarkMediaAsProcessing(); err != nil {
			return err
		}
	}

	if err := video.CompleteMediaEncoding(encodedPath); err != nil {
		return err
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return fmt.Errorf("update video media status: %w", err)
	}

	s.invalidate(ctx, videoID)
	return nil
}

func (s *MediaStatusService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.videoCache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}

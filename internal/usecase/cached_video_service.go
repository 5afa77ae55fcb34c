package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/cache"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video metadata.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with read caching.
// Writes pass through and invalidate; GetVideo is cache-aside with
// singleflight to prevent cache stampede on hot videos.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a caching decorator around the provided
// VideoService.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// CreateVideo delegates to the underlying service. Nothing to invalidate
// for a fresh aggregate.
func (s *cachedVideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	return s.delegate.CreateVideo(ctx, input)
}

// GetVideo retrieves video information with caching.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	key := videoID.String()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getVideoWithCache(ctx, videoID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.Video), nil
}

// UpdateVideo invalidates the cached entry before delegating so stale data
// is not served while the update is in flight.
func (s *cachedVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {
	s.invalidate(ctx, input.VideoID)
	return s.delegate.UpdateVideo(ctx, input)
}

// UploadMedias invalidates the cached entry before delegating.
func (s *cachedVideoService) UploadMedias(ctx context.Context, input UploadMediasInput) error {
	s.invalidate(ctx, input.VideoID)
	return s.delegate.UploadMedias(ctx, input)
}

// DeleteVideo invalidates the cached entry and delegates.
func (s *cachedVideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	s.invalidate(ctx, videoID)
	return s.delegate.DeleteVideo(ctx, videoID)
}

// GetMediaDownloadURL delegates to the underlying service; presigned URLs
// are per-request and never cached.
func (s *cachedVideoService) GetMediaDownloadURL(ctx context.Context, videoID uuid.UUID, field string, expiry time.Duration) (string, error) {
	return s.delegate.GetMediaDownloadURL(ctx, videoID, field, expiry)
}

// ListVideos delegates to the underlying service; list pages are not cached.
func (s *cachedVideoService) ListVideos(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error) {
	return s.delegate.ListVideos(ctx, query)
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		return video, nil
	}

	video, err = s.delegate.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		slog.Warn("failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	}

	return video, nil
}

// invalidate removes a cached entry. Failure is logged, never fatal: the
// entry expires by TTL anyway.
func (s *cachedVideoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}

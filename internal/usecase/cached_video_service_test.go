package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// mockVideoService provides a configurable mock delegate for the caching
// decorator.
type mockVideoService struct {
	createVideoFn func(ctx context.Context, input CreateVideoInput) (*model.Video, error)
	getVideoFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	updateVideoFn func(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error)
	deleteVideoFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	if m.createVideoFn != nil {
		return m.createVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) UploadMedias(ctx context.Context, input UploadMediasInput) error {
	return nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, videoID)
	}
	return nil
}

func (m *mockVideoService) GetMediaDownloadURL(ctx context.Context, videoID uuid.UUID, field string, expiry time.Duration) (string, error) {
	return "", nil
}

func (m *mockVideoService) ListVideos(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error) {
	return repository.SearchResult[*model.Video]{}, nil
}

func TestCachedVideoService_GetVideo_CacheHit(t *testing.T) {
	video := storedVideo()
	delegateCalled := false

	delegate := &mockVideoService{
		getVideoFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			delegateCalled = true
			return nil, errors.New("should not be called")
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo() unexpected error = %v", err)
	}
	if got != video {
		t.Error("GetVideo() should return the cached video")
	}
	if delegateCalled {
		t.Error("cache hit should not reach the delegate")
	}
}

func TestCachedVideoService_GetVideo_CacheMissPopulates(t *testing.T) {
	video := storedVideo()

	delegate := &mockVideoService{
		getVideoFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	var cached *model.Video
	var cachedTTL time.Duration
	videoCache := &mockVideoCache{
		setFn: func(ctx context.Context, v *model.Video, ttl time.Duration) error {
			cached = v
			cachedTTL = ttl
			return nil
		},
	}

	cfg := CachedVideoServiceConfig{CacheTTL: 2 * time.Minute}
	svc := NewCachedVideoService(delegate, videoCache, cfg)

	got, err := svc.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo() unexpected error = %v", err)
	}
	if got != video {
		t.Error("GetVideo() should return the delegate's video")
	}
	if cached != video {
		t.Error("cache miss should populate the cache")
	}
	if cachedTTL != 2*time.Minute {
		t.Errorf("cached TTL = %v, want %v", cachedTTL, 2*time.Minute)
	}
}

func TestCachedVideoService_GetVideo_CacheErrorFallsThrough(t *testing.T) {
	video := storedVideo()

	delegate := &mockVideoService{
		getVideoFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return nil, errors.New("redis down")
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo() unexpected error = %v", err)
	}
	if got != video {
		t.Error("cache failure should fall back to the delegate")
	}
}

func TestCachedVideoService_WritesInvalidate(t *testing.T) {
	videoID := uuid.New()

	var invalidated []uuid.UUID
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			invalidated = append(invalidated, id)
			return nil
		},
	}
	delegate := &mockVideoService{
		updateVideoFn: func(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {
			return &UpdateVideoOutput{}, nil
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	if _, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{VideoID: videoID}); err != nil {
		t.Fatalf("UpdateVideo() unexpected error = %v", err)
	}
	if err := svc.UploadMedias(context.Background(), UploadMediasInput{VideoID: videoID}); err != nil {
		t.Fatalf("UploadMedias() unexpected error = %v", err)
	}
	if err := svc.DeleteVideo(context.Background(), videoID); err != nil {
		t.Fatalf("DeleteVideo() unexpected error = %v", err)
	}

	if len(invalidated) != 3 {
		t.Errorf("invalidated %d times, want 3", len(invalidated))
	}
	for _, id := range invalidated {
		if id != videoID {
			t.Errorf("invalidated %v, want %v", id, videoID)
		}
	}
}

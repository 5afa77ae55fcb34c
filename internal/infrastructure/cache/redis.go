package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/infrastructure/metrics"
)

const (
	// videoCacheKeyPrefix is the prefix for video cache keys in Redis.
	videoCacheKeyPrefix = "video:"
)

// mediaJSON is the cached representation of a Media value object.
type mediaJSON struct {
	FilePath    string `json:"file_path"`
	EncodedPath string `json:"encoded_path,omitempty"`
	Status      string `json:"status"`
}

// videoJSON is the JSON representation of a Video for caching.
// An explicit struct avoids coupling the cache format to the domain model.
type videoJSON struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	YearLaunched  int        `json:"year_launched"`
	Opened        bool       `json:"opened"`
	Published     bool       `json:"published"`
	Duration      float64    `json:"duration"`
	Rating        string     `json:"rating"`
	CreatedAt     string     `json:"created_at"`
	Thumb         string     `json:"thumb,omitempty"`
	ThumbHalf     string     `json:"thumb_half,omitempty"`
	Banner        string     `json:"banner,omitempty"`
	Media         *mediaJSON `json:"media,omitempty"`
	Trailer       *mediaJSON `json:"trailer,omitempty"`
	CategoryIDs   []string   `json:"category_ids,omitempty"`
	GenreIDs      []string   `json:"genre_ids,omitempty"`
	CastMemberIDs []string   `json:"cast_member_ids,omitempty"`
}

// RedisVideoCache implements VideoCache using Redis as the backing store.
type RedisVideoCache struct {
	client *redis.Client
}

// NewRedisVideoCache creates a new Redis-backed video cache.
func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{
		client: client,
	}
}

// Get retrieves a video from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	key := c.buildKey(videoID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.StatusMiss).Inc()
			return nil, nil
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.StatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	video, err := c.deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize video: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.StatusHit).Inc()
	return video, nil
}

// Set stores a video in Redis cache with the specified TTL.
func (c *RedisVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	key := c.buildKey(video.ID)

	data, err := c.serialize(video)
	if err != nil {
		return fmt.Errorf("serialize video: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.StatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.StatusSuccess).Inc()
	return nil
}

// Delete removes a video from Redis cache.
func (c *RedisVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	key := c.buildKey(videoID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.StatusError).Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.StatusSuccess).Inc()
	return nil
}

// buildKey constructs the Redis key for a video.
func (c *RedisVideoCache) buildKey(videoID uuid.UUID) string {
	return videoCacheKeyPrefix + videoID.String()
}

func (c *RedisVideoCache) serialize(video *model.Video) ([]byte, error) {
	v := videoJSON{
		ID:            video.ID.String(),
		Title:         video.Title,
		Description:   video.Description,
		YearLaunched:  video.YearLaunched,
		Opened:        video.Opened,
		Published:     video.Published,
		Duration:      video.Duration,
		Rating:        video.Rating.String(),
		CreatedAt:     video.CreatedAt.Format(time.RFC3339Nano),
		CategoryIDs:   idsToStrings(video.CategoryIDs()),
		GenreIDs:      idsToStrings(video.GenreIDs()),
		CastMemberIDs: idsToStrings(video.CastMemberIDs()),
	}

	if video.Thumb != nil {
		v.Thumb = video.Thumb.Path
	}
	if video.ThumbHalf != nil {
		v.ThumbHalf = video.ThumbHalf.Path
	}
	if video.Banner != nil {
		v.Banner = video.Banner.Path
	}
	if video.Media != nil {
		v.Media = &mediaJSON{
			FilePath:    video.Media.FilePath,
			EncodedPath: video.Media.EncodedPath,
			Status:      video.Media.Status.String(),
		}
	}
	if video.Trailer != nil {
		v.Trailer = &mediaJSON{
			FilePath:    video.Trailer.FilePath,
			EncodedPath: video.Trailer.EncodedPath,
			Status:      video.Trailer.Status.String(),
		}
	}

	return json.Marshal(v)
}

func (c *RedisVideoCache) deserialize(data []byte) (*model.Video, error) {
	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(v.ID)
	if err != nil {
		return nil, fmt.Errorf("parse video ID: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	video := &model.Video{
		ID:           id,
		Title:        v.Title,
		Description:  v.Description,
		YearLaunched: v.YearLaunched,
		Opened:       v.Opened,
		Published:    v.Published,
		Duration:     v.Duration,
		Rating:       model.Rating(v.Rating),
		CreatedAt:    createdAt,
	}

	if v.Thumb != "" {
		video.UpdateThumb(v.Thumb)
	}
	if v.ThumbHalf != "" {
		video.UpdateThumbHalf(v.ThumbHalf)
	}
	if v.Banner != "" {
		video.UpdateBanner(v.Banner)
	}
	if v.Media != nil {
		video.Media = &model.Media{
			FilePath:    v.Media.FilePath,
			EncodedPath: v.Media.EncodedPath,
			Status:      model.MediaStatus(v.Media.Status),
		}
	}
	if v.Trailer != nil {
		video.Trailer = &model.Media{
			FilePath:    v.Trailer.FilePath,
			EncodedPath: v.Trailer.EncodedPath,
			Status:      model.MediaStatus(v.Trailer.Status),
		}
	}

	categoryIDs, err := stringsToIDs(v.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("parse category ids: %w", err)
	}
	for _, cid := range categoryIDs {
		video.AddCategoryID(cid)
	}

	genreIDs, err := stringsToIDs(v.GenreIDs)
	if err != nil {
		return nil, fmt.Errorf("parse genre ids: %w", err)
	}
	for _, gid := range genreIDs {
		video.AddGenreID(gid)
	}

	castMemberIDs, err := stringsToIDs(v.CastMemberIDs)
	if err != nil {
		return nil, fmt.Errorf("parse cast member ids: %w", err)
	}
	for _, mid := range castMemberIDs {
		video.AddCastMemberID(mid)
	}

	return video, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

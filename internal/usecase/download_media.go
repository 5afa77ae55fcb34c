package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

var (
	// ErrInvalidMediaField is returned when the requested download field is
	// not one of the video's media slots.
	ErrInvalidMediaField = errors.New("invalid media field")

	// ErrMediaNotAttached is returned when the video exists but the
	// requested slot has no file attached.
	ErrMediaNotAttached = errors.New("no media attached for the requested field")
)

// GetMediaDownloadURL resolves the stored path for one of the video's media
// slots and returns a presigned download URL for it.
func (s *videoService) GetMediaDownloadURL(ctx context.Context, videoID uuid.UUID, field string, expiry time.Duration) (string, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return "", err
	}

	path, err := mediaFieldPath(video, field)
	if err != nil {
		return "", err
	}

	url, err := s.storage.PresignedDownloadURL(ctx, path, expiry)
	if err != nil {
		return "", fmt.Errorf("presign %s download: %w", field, err)
	}
	return url, nil
}

func mediaFieldPath(video *model.Video, field string) (string, error) {
	switch field {
	case "media":
		if video.Media == nil {
			return "", ErrMediaNotAttached
		}
		return video.Media.FilePath, nil
	case "trailer":
		if video.Trailer == nil {
			return "", ErrMediaNotAttached
		}
		return video.Trailer.FilePath, nil
	case "thumb":
		if video.Thumb == nil {
			return "", ErrMediaNotAttached
		}
		return video.Thumb.Path, nil
	case "thumbhalf":
		if video.ThumbHalf == nil {
			return "", ErrMediaNotAttached
		}
		return video.ThumbHalf.Path, nil
	case "banner":
		if video.Banner == nil {
			return "", ErrMediaNotAttached
		}
		return video.Banner.Path, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidMediaField, field)
	}
}

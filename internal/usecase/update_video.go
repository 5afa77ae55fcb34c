package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// UpdateVideoInput contains the input parameters for updating a video.
// The relation-ID collections are three-valued: nil leaves the current set
// unchanged, empty clears it, non-empty replaces it wholesale.
type UpdateVideoInput struct {
	VideoID uuid.UUID

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

	Thumb     *FileInput
	Banner    *FileInput
	ThumbHalf *FileInput
}

// RelatedRef is a resolved relation entry in the update projection.
type RelatedRef struct {
	ID   uuid.UUID
	Name string
}

// UpdateVideoOutput is the projection returned after a successful update.
// Category and genre names are resolved only when the caller supplied the
// corresponding ID lists; cast members are always IDs only.
type UpdateVideoOutput struct {
	Video      *model.Video
	Categories []RelatedRef
	Genres     []RelatedRef
}

// UpdateVideo orchestrates the full video update: scalar fields, batched
// validation, relation reconciliation against the owning repositories,
// image uploads and a single transactional commit. Any failure before the
// commit leaves the store untouched; files uploaded before the failure are
// deleted again.
func (s *videoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {
	video, err := s.videoRepo.GetByID(ctx, input.VideoID)
	if err != nil {
		return nil, err
	}

	video.Update(
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

	uploaded, err := s.uploadImages(ctx, video, input)
	if err != nil {
		s.cleanupUploads(ctx, uploaded)
		return nil, err
	}

	if err := s.persistVideo(ctx, video); err != nil {
		s.cleanupUploads(ctx, uploaded)
		return nil, err
	}

	output := &UpdateVideoOutput{Video: video}
	if len(input.CategoryIDs) > 0 {
		categories, err := s.categoryRepo.GetByIDs(ctx, input.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve category names: %w", err)
		}
		for _, c := range categories {
			output.Categories = append(output.Categories, RelatedRef{ID: c.ID, Name: c.Name})
		}
	}
	if len(input.GenreIDs) > 0 {
		genres, err := s.genreRepo.GetByIDs(ctx, input.GenreIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve genre names: %w", err)
		}
		for _, g := range genres {
			output.Genres = append(output.Genres, RelatedRef{ID: g.ID, Name: g.Name})
		}
	}

	return output, nil
}

// uploadImages uploads the optional image payloads in a fixed order,
// returning the storage paths written so far. On error the caller deletes
// every returned path.
func (s *videoService) uploadImages(ctx context.Context, video *model.Video, input UpdateVideoInput) ([]string, error) {
	var uploaded []string

	if input.Thumb != nil {
		path, err := s.uploadImage(ctx, video.ID, "thumb", input.Thumb)
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, path)
		video.UpdateThumb(path)
	}

	if input.Banner != nil {
		path, err := s.uploadImage(ctx, video.ID, "banner", input.Banner)
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, path)
		video.UpdateBanner(path)
	}

	if input.ThumbHalf != nil {
		path, err := s.uploadImage(ctx, video.ID, "thumbhalf", input.ThumbHalf)
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, path)
		video.UpdateThumbHalf(path)
	}

	return uploaded, nil
}

func (s *videoService) uploadImage(ctx context.Context, videoID uuid.UUID, field string, file *FileInput) (string, error) {
	name := repository.StorageFileName(videoID, field, file.Extension)
	path, err := s.storage.Upload(ctx, name, file.Reader, file.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", field, err)
	}
	return path, nil
}

// persistVideo writes the aggregate and commits the unit of work, which
// dispatches any pending domain events before the transaction commit.
func (s *videoService) persistVideo(ctx context.Context, video *model.Video) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	if err := uow.Videos().Update(ctx, video); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("update video: %w", err)
	}

	uow.Register(video)
	if err := uow.Commit(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("commit video update: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// UploadMediasInput contains the optional binary payloads to attach.
type UploadMediasInput struct {
	VideoID     uuid.UUID
	VideoFile   *FileInput
	TrailerFile *FileInput
}

// UploadMedias attaches the primary media and/or trailer binaries to a
// video. Attaching the primary media raises a VideoMediaUploaded event,
// dispatched at commit time. If anything fails after an upload succeeded,
// the uploaded file(s) are deleted from storage before the error propagates:
// media files are large and orphaning them is costly, whereas the never-
// persisted in-memory mutations are free to discard.
func (s *videoService) UploadMedias(ctx context.Context, input UploadMediasInput) error {
	video, err := s.videoRepo.GetByID(ctx, input.VideoID)
	if err != nil {
		return err
	}

	var uploaded []string

	if input.VideoFile != nil {
		name := repository.StorageFileName(video.ID, "media", input.VideoFile.Extension)
		path, err := s.storage.Upload(ctx, name, input.VideoFile.Reader, input.VideoFile.ContentType)
		if err != nil {
			return fmt.Errorf("upload media: %w", err)
		}
		uploaded = append(uploaded, path)
		video.UpdateMedia(path)
	}

	if input.TrailerFile != nil {
		name := repository.StorageFileName(video.ID, "trailer", input.TrailerFile.Extension)
		path, err := s.storage.Upload(ctx, name, input.TrailerFile.Reader, input.TrailerFile.ContentType)
		if err != nil {
			s.cleanupUploads(ctx, uploaded)
			return fmt.Errorf("upload trailer: %w", err)
		}
		uploaded = append(uploaded, path)
		video.UpdateTrailer(path)
	}

	if err := s.persistVideo(ctx, video); err != nil {
		s.cleanupUploads(ctx, uploaded)
		return err
	}

	return nil
}

package repository

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorage defines binary upload/delete of media files.
// Implementations are provided by the infrastructure layer (e.g. MinIO, S3).
type FileStorage interface {
	// Upload stores an object and returns the path it can be retrieved by.
	Upload(ctx context.Context, fileName string, reader io.Reader, contentType string) (string, error)

	// Delete removes an object from storage.
	Delete(ctx context.Context, filePath string) error

	// PresignedDownloadURL creates a time-limited URL for downloading an
	// object directly from storage.
	PresignedDownloadURL(ctx context.Context, filePath string, expiry time.Duration) (string, error)
}

// StorageFileName derives the deterministic object name for a media field.
// Format: {id}-{lowercased field name}.{extension with leading dot stripped}.
func StorageFileName(id uuid.UUID, field, extension string) string {
	ext := strings.TrimPrefix(extension, ".")
	return id.String() + "-" + strings.ToLower(field) + "." + ext
}

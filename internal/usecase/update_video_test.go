package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// testVideoDeps bundles the mocks behind a videoService under test.
type testVideoDeps struct {
	videoRepo      *mockVideoRepository
	categoryRepo   *mockCategoryRepository
	genreRepo      *mockGenreRepository
	castMemberRepo *mockCastMemberRepository
	storage        *mockFileStorage
	uow            *mockUnitOfWork
}

func newTestVideoService() (VideoService, *testVideoDeps) {
	deps := &testVideoDeps{
		videoRepo:      &mockVideoRepository{},
		categoryRepo:   &mockCategoryRepository{},
		genreRepo:      &mockGenreRepository{},
		castMemberRepo: &mockCastMemberRepository{},
		storage:        &mockFileStorage{},
		uow:            &mockUnitOfWork{},
	}
	deps.uow.videos = deps.videoRepo
	deps.uow.categories = deps.categoryRepo
	deps.uow.genres = deps.genreRepo
	deps.uow.castMembers = deps.castMemberRepo

	svc := NewVideoService(
		deps.videoRepo,
		deps.categoryRepo,
		deps.genreRepo,
		deps.castMemberRepo,
		deps.storage,
		&mockUnitOfWorkFactory{uow: deps.uow},
	)
	return svc, deps
}

func storedVideo() *model.Video {
	video := model.NewVideo("Stored Title", "Stored description", 2020, false, true, 90, model.Rating12)
	return video
}

func updateInputFor(video *model.Video) UpdateVideoInput {
	return UpdateVideoInput{
		VideoID:      video.ID,
		Title:        "New Title",
		Description:  "New description",
		YearLaunched: 2024,
		Opened:       true,
		Published:    true,
		Duration:     120,
		Rating:       model.RatingL,
	}
}

func TestUpdateVideo_VideoNotFound(t *testing.T) {
	svc, _ := newTestVideoService()

	_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{VideoID: uuid.New()})
	if !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("UpdateVideo() error = %v, want %v", err, repository.ErrVideoNotFound)
	}
}

func TestUpdateVideo_ValidationBatchesAllViolations(t *testing.T) {
	svc, deps := newTestVideoService()
	video := storedVideo()
	deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
		return video, nil
	}

	input := updateInputFor(video)
	input.Title = ""
	input.Description = strings.Repeat("a", 4001)

	_, err := svc.UpdateVideo(context.Background(), input)

	var validationErr *EntityValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("UpdateVideo() error = %v, want EntityValidationError", err)
	}
	if len(validationErr.Violations) != 2 {
		t.Errorf("got %d violations, want 2: %v", len(validationErr.Violations), validationErr.Violations)
	}
	if deps.uow.committed {
		t.Error("nothing should be committed on validation failure")
	}
}

func TestUpdateVideo_UnknownCategoryID(t *testing.T) {
	svc, deps := newTestVideoService()
	video := storedVideo()
	deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
		return video, nil
	}

	known := uuid.New()
	unknown := uuid.New()
	deps.categoryRepo.existingIDsFn = func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
		return []uuid.UUID{known}, nil
	}

	input := updateInputFor(video)
	input.CategoryIDs = []uuid.UUID{known, unknown}

	_, err := svc.UpdateVideo(context.Background(), input)

	var relatedErr *RelatedAggregateNotFoundError
	if !errors.As(err, &relatedErr) {
		t.Fatalf("UpdateVideo() error = %v, want RelatedAggregateNotFoundError", err)
	}
	if relatedErr.Aggregate != "category" {
		t.Errorf("Aggregate = %q, want %q", relatedErr.Aggregate, "category")
	}
	if len(relatedErr.MissingIDs) != 1 || relatedErr.MissingIDs[0] != unknown {
		t.Errorf("MissingIDs = %v, want [%v]", relatedErr.MissingIDs, unknown)
	}
	if deps.uow.committed {
		t.Error("nothing should be committed when a relation ID is unknown")
	}
}

func TestUpdateVideo_RelationThreeValuedSemantics(t *testing.T) {
	existing := uuid.New()
	replacement := uuid.New()

	tests := []struct {
		name     string
		genreIDs []uuid.UUID
		want     []uuid.UUID
	}{
		{"nil leaves the set unchanged", nil, []uuid.UUID{existing}},
		{"empty clears the set", []uuid.UUID{}, nil},
		{"non-empty replaces the set", []uuid.UUID{replacement}, []uuid.UUID{replacement}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestVideoService()
			video := storedVideo()
			video.AddGenreID(existing)
			deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
				return video, nil
			}

			input := updateInputFor(video)
			input.GenreIDs = tt.genreIDs

			output, err := svc.UpdateVideo(context.Background(), input)
			if err != nil {
				t.Fatalf("UpdateVideo() unexpected error = %v", err)
			}

			got := output.Video.GenreIDs()
			if len(got) != len(tt.want) {
				t.Fatalf("GenreIDs() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("GenreIDs()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if !deps.uow.committed {
				t.Error("successful update should commit")
			}
		})
	}
}

func TestUpdateVideo_ImageUploadFailureCleansUpEarlierUploads(t *testing.T) {
	svc, deps := newTestVideoService()
	video := storedVideo()
	deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
		return video, nil
	}

	var deleted []string
	deps.storage.uploadFn = func(ctx context.Context, fileName string, reader io.Reader, contentType string) (string, error) {
		if strings.Contains(fileName, "banner") {
			return "", errors.New("storage unavailable")
		}
		return fileName, nil
	}
	deps.storage.deleteFn = func(ctx context.Context, filePath string) error {
		deleted = append(deleted, filePath)
		return nil
	}

	input := updateInputFor(video)
	input.Thumb = &FileInput{Reader: strings.NewReader("img"), Extension: ".png", ContentType: "image/png"}
	input.Banner = &FileInput{Reader: strings.NewReader("img"), Extension: ".png", ContentType: "image/png"}

	_, err := svc.UpdateVideo(context.Background(), input)
	if err == nil {
		t.Fatal("UpdateVideo() should fail when an image upload fails")
	}

	if len(deleted) != 1 || !strings.Contains(deleted[0], "thumb") {
		t.Errorf("deleted = %v, want the earlier thumb upload removed", deleted)
	}
	if deps.uow.committed {
		t.Error("nothing should be committed when an upload fails")
	}
}

func TestUpdateVideo_CommitFailureCleansUpUploads(t *testing.T) {
	svc, deps := newTestVideoService()
	video := storedVideo()
	deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
		return video, nil
	}

	deps.uow.commitFn = func(ctx context.Context) error {
		return errors.New("broker down")
	}

	var deleted []string
	deps.storage.deleteFn = func(ctx context.Context, filePath string) error {
		deleted = append(deleted, filePath)
		return nil
	}

	input := updateInputFor(video)
	input.Thumb = &FileInput{Reader: strings.NewReader("img"), Extension: ".png", ContentType: "image/png"}

	_, err := svc.UpdateVideo(context.Background(), input)
	if err == nil {
		t.Fatal("UpdateVideo() should propagate the commit failure")
	}
	if len(deleted) != 1 {
		t.Errorf("deleted = %v, want the uploaded thumb removed", deleted)
	}
	if !deps.uow.rolledBack {
		t.Error("commit failure should roll the transaction back")
	}
}

func TestUpdateVideo_ResolvesRelationNames(t *testing.T) {
	svc, deps := newTestVideoService()
	video := storedVideo()
	deps.videoRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
		return video, nil
	}

	category, _ := model.NewCategory("Documentary", "")
	deps.categoryRepo.existingIDsFn = func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
		return ids, nil
	}
	deps.categoryRepo.getByIDsFn = func(ctx context.Context, ids []uuid.UUID) ([]*model.Category, error) {
		return []*model.Category{category}, nil
	}

	input := updateInputFor(video)
	input.CategoryIDs = []uuid.UUID{category.ID}

	output, err := svc.UpdateVideo(context.Background(), input)
	if err != nil {
		t.Fatalf("UpdateVideo() unexpected error = %v", err)
	}

	if len(output.Categories) != 1 {
		t.Fatalf("output.Categories = %v, want one entry", output.Categories)
	}
	if output.Categories[0].Name != "Documentary" {
		t.Errorf("Categories[0].Name = %q, want %q", output.Categories[0].Name, "Documentary")
	}
	if output.Video.Title != "New Title" {
		t.Errorf("Video.Title = %q, want %q", output.Video.Title, "New Title")
	}
}

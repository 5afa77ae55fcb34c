package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRating_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"ER is valid", RatingER, true},
		{"L is valid", RatingL, true},
		{"10 is valid", Rating10, true},
		{"12 is valid", Rating12, true},
		{"14 is valid", Rating14, true},
		{"16 is valid", Rating16, true},
		{"18 is valid", Rating18, true},
		{"empty string is invalid", Rating(""), false},
		{"unknown rating is invalid", Rating("PG-13"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rating.IsValid(); got != tt.want {
				t.Errorf("Rating.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	if _, err := ParseRating("banana"); err == nil {
		t.Error("ParseRating() should reject unknown ratings")
	}

	rating, err := ParseRating("12")
	if err != nil {
		t.Fatalf("ParseRating() unexpected error = %v", err)
	}
	if rating != Rating12 {
		t.Errorf("ParseRating() = %v, want %v", rating, Rating12)
	}
}

func TestMediaStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		current MediaStatus
		next    MediaStatus
		want    bool
	}{
		// Valid transitions
		{"PENDING -> PROCESSING", MediaStatusPending, MediaStatusProcessing, true},
		{"PROCESSING -> COMPLETED", MediaStatusProcessing, MediaStatusCompleted, true},

		// Invalid transitions
		{"PENDING -> COMPLETED (skip)", MediaStatusPending, MediaStatusCompleted, false},
		{"COMPLETED -> PROCESSING (reverse)", MediaStatusCompleted, MediaStatusProcessing, false},
		{"COMPLETED -> PENDING (reverse)", MediaStatusCompleted, MediaStatusPending, false},

		// Self transitions
		{"PENDING -> PENDING", MediaStatusPending, MediaStatusPending, false},
		{"PROCESSING -> PROCESSING", MediaStatusProcessing, MediaStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.current.CanTransitionTo(tt.next); got != tt.want {
				t.Errorf("MediaStatus.CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newValidVideo() *Video {
	return NewVideo("My Movie", "A movie about testing", 2024, true, false, 127.5, RatingL)
}

func TestVideo_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Video)
		wantFields []string
	}{
		{
			name:       "valid video has no violations",
			mutate:     func(v *Video) {},
			wantFields: nil,
		},
		{
			name:       "empty title",
			mutate:     func(v *Video) { v.Title = "" },
			wantFields: []string{"Title"},
		},
		{
			name:       "title too long",
			mutate:     func(v *Video) { v.Title = strings.Repeat("a", 256) },
			wantFields: []string{"Title"},
		},
		{
			name:       "description too long",
			mutate:     func(v *Video) { v.Description = strings.Repeat("a", 4001) },
			wantFields: []string{"Description"},
		},
		{
			name:       "invalid rating",
			mutate:     func(v *Video) { v.Rating = Rating("NC-17") },
			wantFields: []string{"Rating"},
		},
		{
			name: "all violations reported together",
			mutate: func(v *Video) {
				v.Title = ""
				v.Description = ""
				v.Rating = Rating("")
			},
			wantFields: []string{"Title", "Description", "Rating"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := newValidVideo()
			tt.mutate(video)

			notification := NewNotification()
			video.Validate(notification)

			errs := notification.Errors()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() reported %d violations, want %d: %v", len(errs), len(tt.wantFields), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("violation[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestVideo_UpdateMedia_RaisesEvent(t *testing.T) {
	video := newValidVideo()

	video.UpdateMedia("videos/abc-media.mp4")

	if video.Media == nil {
		t.Fatal("UpdateMedia() should attach the media")
	}
	if video.Media.Status != MediaStatusPending {
		t.Errorf("Media.Status = %v, want %v", video.Media.Status, MediaStatusPending)
	}

	events := video.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("PendingEvents() = %d events, want 1", len(events))
	}
	if events[0].Kind() != EventKindVideoMediaUploaded {
		t.Errorf("event.Kind() = %q, want %q", events[0].Kind(), EventKindVideoMediaUploaded)
	}

	uploaded, ok := events[0].(VideoMediaUploaded)
	if !ok {
		t.Fatalf("event has unexpected type %T", events[0])
	}
	if uploaded.ResourceID != video.ID {
		t.Errorf("event.ResourceID = %v, want %v", uploaded.ResourceID, video.ID)
	}
	if uploaded.FilePath != "videos/abc-media.mp4" {
		t.Errorf("event.FilePath = %q, want %q", uploaded.FilePath, "videos/abc-media.mp4")
	}

	video.ClearEvents()
	if len(video.PendingEvents()) != 0 {
		t.Error("ClearEvents() should drop pending events")
	}
}

func TestVideo_UpdateTrailer_NoEvent(t *testing.T) {
	video := newValidVideo()

	video.UpdateTrailer("videos/abc-trailer.mp4")

	if video.Trailer == nil {
		t.Fatal("UpdateTrailer() should attach the trailer")
	}
	if len(video.PendingEvents()) != 0 {
		t.Error("UpdateTrailer() should not raise events")
	}
}

func TestVideo_MediaStatusTransitions(t *testing.T) {
	video := newValidVideo()

	if err := video.MarkMediaAsProcessing(); err == nil {
		t.Error("MarkMediaAsProcessing() should fail with no media attached")
	}

	video.UpdateMedia("videos/abc-media.mp4")

	if err := video.CompleteMediaEncoding("encoded/abc.mp4"); err == nil {
		t.Error("CompleteMediaEncoding() should reject PENDING -> COMPLETED")
	}

	if err := video.MarkMediaAsProcessing(); err != nil {
		t.Fatalf("MarkMediaAsProcessing() unexpected error = %v", err)
	}
	if video.Media.Status != MediaStatusProcessing {
		t.Errorf("Media.Status = %v, want %v", video.Media.Status, MediaStatusProcessing)
	}

	if err := video.CompleteMediaEncoding("encoded/abc.mp4"); err != nil {
		t.Fatalf("CompleteMediaEncoding() unexpected error = %v", err)
	}
	if video.Media.Status != MediaStatusCompleted {
		t.Errorf("Media.Status = %v, want %v", video.Media.Status, MediaStatusCompleted)
	}
	if video.Media.EncodedPath != "encoded/abc.mp4" {
		t.Errorf("Media.EncodedPath = %q, want %q", video.Media.EncodedPath, "encoded/abc.mp4")
	}

	if err := video.MarkMediaAsProcessing(); err == nil {
		t.Error("MarkMediaAsProcessing() should reject COMPLETED -> PROCESSING")
	}
}

func TestVideo_RelationSets(t *testing.T) {
	video := newValidVideo()
	id1 := uuid.New()
	id2 := uuid.New()

	video.AddCategoryID(id1)
	video.AddCategoryID(id2)
	video.AddCategoryID(id1) // duplicate add is a no-op

	if got := len(video.CategoryIDs()); got != 2 {
		t.Errorf("CategoryIDs() has %d entries, want 2", got)
	}

	video.RemoveCategoryID(id1)
	if got := video.CategoryIDs(); len(got) != 1 || got[0] != id2 {
		t.Errorf("CategoryIDs() after remove = %v, want [%v]", got, id2)
	}

	// Removing an absent ID is a no-op
	video.RemoveCategoryID(id1)
	if got := len(video.CategoryIDs()); got != 1 {
		t.Errorf("CategoryIDs() has %d entries, want 1", got)
	}

	video.AddGenreID(id1)
	video.AddCastMemberID(id2)
	video.RemoveAllCategoryIDs()
	video.RemoveAllGenreIDs()
	video.RemoveAllCastMemberIDs()

	if len(video.CategoryIDs()) != 0 || len(video.GenreIDs()) != 0 || len(video.CastMemberIDs()) != 0 {
		t.Error("RemoveAll* should clear every relation set")
	}
}

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating is the content rating of a video.
type Rating string

const (
	RatingER Rating = "ER"
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

var ErrInvalidRating = errors.New("invalid content rating")

func (r Rating) IsValid() bool {
	switch r {
	case RatingER, RatingL, Rating10, Rating12, Rating14, Rating16, Rating18:
		return true
	default:
		return false
	}
}

func (r Rating) String() string {
	return string(r)
}

// ParseRating converts a string into a Rating.
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// MediaStatus is the processing state of an attached media file.
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
)

// Valid media status transitions:
// PENDING -> PROCESSING -> COMPLETED
var validMediaTransitions = map[MediaStatus][]MediaStatus{
	MediaStatusPending:    {MediaStatusProcessing},
	MediaStatusProcessing: {MediaStatusCompleted},
	MediaStatusCompleted:  {},
}

func (s MediaStatus) IsValid() bool {
	switch s {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted:
		return true
	default:
		return false
	}
}

func (s MediaStatus) CanTransitionTo(next MediaStatus) bool {
	allowed, exists := validMediaTransitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

func (s MediaStatus) String() string {
	return string(s)
}

var ErrInvalidMediaTransition = errors.New("invalid media status transition")

// Media is the value object for an attached video or trailer file.
// It is owned exclusively by the Video holding it and replaced wholesale.
type Media struct {
	FilePath    string
	EncodedPath string
	Status      MediaStatus
}

// NewMedia creates a Media in PENDING state for a freshly uploaded file.
func NewMedia(filePath string) *Media {
	return &Media{
		FilePath: filePath,
		Status:   MediaStatusPending,
	}
}

// ImageMedia is the value object for thumb, half-thumb and banner images.
type ImageMedia struct {
	Path string
}

// Video is the aggregate root of the catalog.
// Relation sets hold foreign IDs only, never embedded aggregates.
type Video struct {
	BaseAggregate

	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     float64
	Rating       Rating
	CreatedAt    time.Time

	Thumb     *ImageMedia
	ThumbHalf *ImageMedia
	Banner    *ImageMedia
	Media     *Media
	Trailer   *Media

	categoryIDs   []uuid.UUID
	genreIDs      []uuid.UUID
	castMemberIDs []uuid.UUID
}

const (
	maxVideoTitleLength       = 255
	maxVideoDescriptionLength = 4000
)

// NewVideo creates a Video with the core scalar attributes.
// Structural invariants are checked by Validate, not here: the update path
// must batch every violation and callers decide when to run the pass.
func NewVideo(title, description string, yearLaunched int, opened, published bool, duration float64, rating Rating) *Video {
	return &Video{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		YearLaunched: yearLaunched,
		Opened:       opened,
		Published:    published,
		Duration:     duration,
		Rating:       rating,
		CreatedAt:    time.Now(),
	}
}

// Update replaces the scalar attributes. Relation sets and media slots have
// their own mutators.
func (v *Video) Update(title, description string, yearLaunched int, opened, published bool, duration float64, rating Rating) {
	v.Title = title
	v.Description = description
	v.YearLaunched = yearLaunched
	v.Opened = opened
	v.Published = published
	v.Duration = duration
	v.Rating = rating
}

// Validate reports every structural violation into the notification.
// Callers must check notification.HasErrors afterwards.
func (v *Video) Validate(notification *Notification) {
	if v.Title == "" {
		notification.Add("Title", "should not be empty")
	}
	if len(v.Title) > maxVideoTitleLength {
		notification.Add("Title", fmt.Sprintf("should be less or equal %d characters", maxVideoTitleLength))
	}
	if v.Description == "" {
		notification.Add("Description", "should not be empty")
	}
	if len(v.Description) > maxVideoDescriptionLength {
		notification.Add("Description", fmt.Sprintf("should be less or equal %d characters", maxVideoDescriptionLength))
	}
	if !v.Rating.IsValid() {
		notification.Add("Rating", "is not a valid content rating")
	}
}

// UpdateThumb replaces the thumbnail image.
func (v *Video) UpdateThumb(path string) {
	v.Thumb = &ImageMedia{Path: path}
}

// UpdateThumbHalf replaces the half-size thumbnail image.
func (v *Video) UpdateThumbHalf(path string) {
	v.ThumbHalf = &ImageMedia{Path: path}
}

// UpdateBanner replaces the banner image.
func (v *Video) UpdateBanner(path string) {
	v.Banner = &ImageMedia{Path: path}
}

// UpdateMedia attaches the primary media file and raises a
// VideoMediaUploaded event.
func (v *Video) UpdateMedia(filePath string) {
	v.Media = NewMedia(filePath)
	v.RaiseEvent(NewVideoMediaUploaded(v.ID, filePath))
}

// UpdateTrailer attaches the trailer file. No event is raised for trailers.
func (v *Video) UpdateTrailer(filePath string) {
	v.Trailer = NewMedia(filePath)
}

// MarkMediaAsProcessing transitions the primary media PENDING -> PROCESSING.
func (v *Video) MarkMediaAsProcessing() error {
	if v.Media == nil {
		return errors.New("video has no media to process")
	}
	if !v.Media.Status.CanTransitionTo(MediaStatusProcessing) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, v.Media.Status, MediaStatusProcessing)
	}
	v.Media.Status = MediaStatusProcessing
	return nil
}

// CompleteMediaEncoding transitions the primary media to COMPLETED and
// records the encoded path.
func (v *Video) CompleteMediaEncoding(encodedPath string) error {
	if v.Media == nil {
		return errors.New("video has no media to complete")
	}
	if !v.Media.Status.CanTransitionTo(MediaStatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, v.Media.Status, MediaStatusCompleted)
	}
	v.Media.Status = MediaStatusCompleted
	v.Media.EncodedPath = encodedPath
	return nil
}

// Relation-set mutators. Add is a no-op for an ID already present: the sets
// back junction tables keyed on both columns, so a duplicate could never be
// observable state anyway.

func (v *Video) AddCategoryID(id uuid.UUID) {
	v.categoryIDs = addID(v.categoryIDs, id)
}

func (v *Video) RemoveCategoryID(id uuid.UUID) {
	v.categoryIDs = removeID(v.categoryIDs, id)
}

func (v *Video) RemoveAllCategoryIDs() {
	v.categoryIDs = nil
}

func (v *Video) CategoryIDs() []uuid.UUID {
	return v.categoryIDs
}

func (v *Video) AddGenreID(id uuid.UUID) {
	v.genreIDs = addID(v.genreIDs, id)
}

func (v *Video) RemoveGenreID(id uuid.UUID) {
	v.genreIDs = removeID(v.genreIDs, id)
}

func (v *Video) RemoveAllGenreIDs() {
	v.genreIDs = nil
}

func (v *Video) GenreIDs() []uuid.UUID {
	return v.genreIDs
}

func (v *Video) AddCastMemberID(id uuid.UUID) {
	v.castMemberIDs = addID(v.castMemberIDs, id)
}

func (v *Video) RemoveCastMemberID(id uuid.UUID) {
	v.castMemberIDs = removeID(v.castMemberIDs, id)
}

func (v *Video) RemoveAllCastMemberIDs() {
	v.castMemberIDs = nil
}

func (v *Video) CastMemberIDs() []uuid.UUID {
	return v.castMemberIDs
}

func addID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

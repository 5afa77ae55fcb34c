package repository

import "errors"

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrGenreNotFound is returned when a genre cannot be found.
	ErrGenreNotFound = errors.New("genre not found")

	// ErrCastMemberNotFound is returned when a cast member cannot be found.
	ErrCastMemberNotFound = errors.New("cast member not found")

	// ErrDuplicateID is returned when inserting an aggregate whose ID
	// already exists.
	ErrDuplicateID = errors.New("aggregate already exists")

	// ErrObjectNotFound is returned when a stored media file does not exist.
	ErrObjectNotFound = errors.New("object not found in storage")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)

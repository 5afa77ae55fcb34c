package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTooLong = errors.New("name exceeds maximum length of 255 characters")
)

const maxNameLength = 255

// Category groups videos by subject.
type Category struct {
	BaseAggregate

	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// NewCategory creates an active Category.
// Unlike Video, the simple aggregates validate eagerly and fail on the
// first violation.
func NewCategory(name, description string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

// Update replaces name and description.
func (c *Category) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	return nil
}

// Activate marks the category active.
func (c *Category) Activate() {
	c.IsActive = true
}

// Deactivate marks the category inactive.
func (c *Category) Deactivate() {
	c.IsActive = false
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: %d characters", ErrNameTooLong, len(name))
	}
	return nil
}

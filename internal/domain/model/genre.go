package model

import (
	"time"

	"github.com/google/uuid"
)

// Genre classifies videos and references the categories it belongs to.
type Genre struct {
	BaseAggregate

	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time

	categoryIDs []uuid.UUID
}

// NewGenre creates an active Genre.
func NewGenre(name string) (*Genre, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Genre{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}

// Update replaces the name.
func (g *Genre) Update(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	g.Name = name
	return nil
}

// Activate marks the genre active.
func (g *Genre) Activate() {
	g.IsActive = true
}

// Deactivate marks the genre inactive.
func (g *Genre) Deactivate() {
	g.IsActive = false
}

func (g *Genre) AddCategoryID(id uuid.UUID) {
	g.categoryIDs = addID(g.categoryIDs, id)
}

func (g *Genre) RemoveCategoryID(id uuid.UUID) {
	g.categoryIDs = removeID(g.categoryIDs, id)
}

func (g *Genre) RemoveAllCategoryIDs() {
	g.categoryIDs = nil
}

func (g *Genre) CategoryIDs() []uuid.UUID {
	return g.categoryIDs
}

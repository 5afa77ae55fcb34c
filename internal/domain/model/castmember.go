package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CastMemberType distinguishes directors from actors.
type CastMemberType string

const (
	CastMemberTypeDirector CastMemberType = "DIRECTOR"
	CastMemberTypeActor    CastMemberType = "ACTOR"
)

var ErrInvalidCastMemberType = errors.New("invalid cast member type")

func (t CastMemberType) IsValid() bool {
	switch t {
	case CastMemberTypeDirector, CastMemberTypeActor:
		return true
	default:
		return false
	}
}

func (t CastMemberType) String() string {
	return string(t)
}

// CastMember is a person credited on videos.
type CastMember struct {
	BaseAggregate

	ID        uuid.UUID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
}

// NewCastMember creates a CastMember, failing on the first violation.
func NewCastMember(name string, memberType CastMemberType) (*CastMember, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !memberType.IsValid() {
		return nil, ErrInvalidCastMemberType
	}
	return &CastMember{
		ID:        uuid.New(),
		Name:      name,
		Type:      memberType,
		CreatedAt: time.Now(),
	}, nil
}

// Update replaces name and type.
func (m *CastMember) Update(name string, memberType CastMemberType) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !memberType.IsValid() {
		return ErrInvalidCastMemberType
	}
	m.Name = name
	m.Type = memberType
	return nil
}

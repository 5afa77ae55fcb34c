package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
)

// EntityValidationError carries every structural violation found during a
// batched validation pass, not just the first.
type EntityValidationError struct {
	Violations []model.FieldError
}

func (e *EntityValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return "entity validation failed: " + strings.Join(parts, "; ")
}

// RelatedAggregateNotFoundError is returned when a relation set references
// IDs that do not exist in their owning repository. Every missing ID is
// named in the message.
type RelatedAggregateNotFoundError struct {
	Aggregate  string
	MissingIDs []uuid.UUID
}

func (e *RelatedAggregateNotFoundError) Error() string {
	ids := make([]string, 0, len(e.MissingIDs))
	for _, id := range e.MissingIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("related %s id(s) not found: %s", e.Aggregate, strings.Join(ids, ", "))
}

// missingIDs returns the elements of wanted absent from existing.
func missingIDs(wanted, existing []uuid.UUID) []uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		present[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

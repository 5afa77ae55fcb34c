package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
	"github.com/hszk-dev/gocatalog/internal/usecase"
)

// parseSearchQuery reads the shared pagination parameters. Missing or
// malformed numeric values fall back to the repository defaults.
func parseSearchQuery(r *http.Request) repository.SearchQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	return repository.SearchQuery{
		Page:    page,
		PerPage: perPage,
		Term:    q.Get("search"),
		Sort:    q.Get("sort"),
		Dir:     repository.SortDirection(q.Get("dir")),
	}.Normalize()
}

// parseUUIDList converts a string list preserving the nil/empty distinction:
// nil input stays nil, an empty list stays empty.
func parseUUIDList(values []string) ([]uuid.UUID, error) {
	if values == nil {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pageMeta[T any](result repository.SearchResult[T]) Meta {
	return Meta{
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		Total:       result.Total,
	}
}

// handleServiceError maps domain and use-case errors onto HTTP statuses:
// missing aggregates are 404, structural and referential violations are 422,
// everything unexpected is a 500 with no internals leaked.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *usecase.EntityValidationError
	var relatedErr *usecase.RelatedAggregateNotFoundError

	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Problem(w, http.StatusNotFound, "Video not found", "")
	case errors.Is(err, repository.ErrCategoryNotFound):
		Problem(w, http.StatusNotFound, "Category not found", "")
	case errors.Is(err, repository.ErrGenreNotFound):
		Problem(w, http.StatusNotFound, "Genre not found", "")
	case errors.Is(err, repository.ErrCastMemberNotFound):
		Problem(w, http.StatusNotFound, "Cast member not found", "")
	case errors.Is(err, repository.ErrObjectNotFound), errors.Is(err, usecase.ErrMediaNotAttached):
		Problem(w, http.StatusNotFound, "Media not found", err.Error())
	case errors.As(err, &validationErr):
		violations := make([]FieldViolation, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			violations = append(violations, FieldViolation{Field: v.Field, Message: v.Message})
		}
		Unprocessable(w, "Entity validation failed", violations)
	case errors.As(err, &relatedErr):
		Problem(w, http.StatusUnprocessableEntity, "Related aggregate not found", relatedErr.Error())
	case errors.Is(err, model.ErrEmptyName),
		errors.Is(err, model.ErrNameTooLong),
		errors.Is(err, model.ErrInvalidCastMemberType),
		errors.Is(err, model.ErrInvalidRating):
		Problem(w, http.StatusUnprocessableEntity, "Entity validation failed", err.Error())
	case errors.Is(err, usecase.ErrInvalidMediaField):
		Problem(w, http.StatusBadRequest, "Invalid media field", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal server error", "")
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/usecase"
)

type CreateGenreRequest struct {
	Name        string   `json:"name"`
	CategoryIDs []string `json:"category_ids"`
}

type GenreResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	IsActive    bool     `json:"is_active"`
	CategoryIDs []string `json:"category_ids"`
	CreatedAt   string   `json:"created_at"`
}

// GenreHandler handles genre-related HTTP requests.
type GenreHandler struct {
	svc usecase.GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(svc usecase.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// Create handles POST /v1/genres
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Invalid JSON body")
		return
	}

	categoryIDs, err := parseUUIDList(req.CategoryIDs)
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Category IDs must be valid UUIDs")
		return
	}

	genre, err := h.svc.CreateGenre(r.Context(), usecase.CreateGenreInput{
		Name:        req.Name,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusCreated, toGenreResponse(genre))
}

// Get handles GET /v1/genres/{id}
func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Genre ID must be a valid UUID")
		return
	}

	genre, err := h.svc.GetGenre(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusOK, toGenreResponse(genre))
}

// Delete handles DELETE /v1/genres/{id}
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Genre ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteGenre(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/genres
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListGenres(r.Context(), parseSearchQuery(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]GenreResponse, 0, len(result.Items))
	for _, genre := range result.Items {
		items = append(items, toGenreResponse(genre))
	}
	Page(w, items, pageMeta(result))
}

func toGenreResponse(g *model.Genre) GenreResponse {
	return GenreResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		IsActive:    g.IsActive,
		CategoryIDs: uuidStrings(g.CategoryIDs()),
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}

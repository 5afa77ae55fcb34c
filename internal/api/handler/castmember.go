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

type CreateCastMemberRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CastMemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// CastMemberHandler handles cast-member-related HTTP requests.
type CastMemberHandler struct {
	svc usecase.CastMemberService
}

// NewCastMemberHandler creates a new CastMemberHandler.
func NewCastMemberHandler(svc usecase.CastMemberService) *CastMemberHandler {
	return &CastMemberHandler{svc: svc}
}

// Create handles POST /v1/cast-members
func (h *CastMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCastMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Invalid JSON body")
		return
	}

	member, err := h.svc.CreateCastMember(r.Context(), usecase.CreateCastMemberInput{
		Name: req.Name,
		Type: model.CastMemberType(req.Type),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusCreated, toCastMemberResponse(member))
}

// Get handles GET /v1/cast-members/{id}
func (h *CastMemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Cast member ID must be a valid UUID")
		return
	}

	member, err := h.svc.GetCastMember(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusOK, toCastMemberResponse(member))
}

// Delete handles DELETE /v1/cast-members/{id}
func (h *CastMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Cast member ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteCastMember(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/cast-members
func (h *CastMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCastMembers(r.Context(), parseSearchQuery(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]CastMemberResponse, 0, len(result.Items))
	for _, member := range result.Items {
		items = append(items, toCastMemberResponse(member))
	}
	Page(w, items, pageMeta(result))
}

func toCastMemberResponse(m *model.CastMember) CastMemberResponse {
	return CastMemberResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Type:      m.Type.String(),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

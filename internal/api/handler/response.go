package handler

import (
	"encoding/json"
	"net/http"
)

// DataResponse is the envelope for single-resource responses.
type DataResponse struct {
	Data any `json:"data"`
}

// Meta carries pagination information for list responses.
type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// PageResponse is the envelope for paginated list responses.
type PageResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// FieldViolation names one structural violation in a 422 response.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProblemResponse is the error payload, loosely following RFC 7807.
type ProblemResponse struct {
	Title  string           `json:"title"`
	Status int              `json:"status"`
	Detail string           `json:"detail,omitempty"`
	Errors []FieldViolation `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Data writes a single resource wrapped in the data envelope.
func Data(w http.ResponseWriter, status int, payload any) {
	JSON(w, status, DataResponse{Data: payload})
}

// Page writes a list wrapped in the data envelope with pagination meta.
func Page(w http.ResponseWriter, items any, meta Meta) {
	JSON(w, http.StatusOK, PageResponse{Data: items, Meta: meta})
}

// Problem writes an error payload.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemResponse{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// Unprocessable writes a 422 with the full violation list.
func Unprocessable(w http.ResponseWriter, title string, violations []FieldViolation) {
	JSON(w, http.StatusUnprocessableEntity, ProblemResponse{
		Title:  title,
		Status: http.StatusUnprocessableEntity,
		Errors: violations,
	})
}

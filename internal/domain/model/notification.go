package model

import "strings"

// FieldError describes a single structural violation found during validation.
type FieldError struct {
	Field   string
	Message string
}

// Notification collects validation errors without short-circuiting.
// Aggregates with multi-step update paths (Video) report every violation
// into a Notification so callers can surface the full list at once;
// simpler aggregates return an error on the first violation instead.
type Notification struct {
	errors []FieldError
}

// NewNotification creates an empty Notification.
func NewNotification() *Notification {
	return &Notification{}
}

// Add records a violation for the given field.
func (n *Notification) Add(field, message string) {
	n.errors = append(n.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any violation was recorded.
func (n *Notification) HasErrors() bool {
	return len(n.errors) > 0
}

// Errors returns the recorded violations in the order they were added.
func (n *Notification) Errors() []FieldError {
	return n.errors
}

// Message joins all violations into a single human-readable string.
func (n *Notification) Message() string {
	parts := make([]string, 0, len(n.errors))
	for _, e := range n.errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

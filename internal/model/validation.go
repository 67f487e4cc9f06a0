// Package model defines domain entities for the application.
package model

import (
	"fmt"
	"strings"
)

// Violation describes a single failed constraint on an entity field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found on an entity.
// Handlers unwrap it with errors.As to build client error responses.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

package domain

import (
	"github.com/google/uuid"
)

// Topic is read-only taxonomy reference data. Topics are seeded once from the
// taxonomy file and never mutated at runtime.
type Topic struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ParentCategory string    `json:"parentCategory,omitempty"`
	Description    string    `json:"description,omitempty"`
}

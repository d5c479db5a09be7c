// internal/domain/exercise.go
package domain

import "github.com/google/uuid"

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
}

// Equal reports whether both exercises are the same entity.
// Two exercises with the same name are distinct unless they share an ID.
func (e Exercise) Equal(other Exercise) bool {
	return e.ID == other.ID
}

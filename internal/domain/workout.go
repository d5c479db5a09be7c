package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SetField names the editable numeric fields of a WorkoutSet.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
)

var (
	ErrUnknownSetField = errors.New("unknown set field")
	ErrNegativeValue   = errors.New("set values cannot be negative")
	ErrFractionalReps  = errors.New("reps must be a whole number")
	ErrNonFiniteValue  = errors.New("set values must be finite numbers")
	ErrRepsOutOfRange  = errors.New("reps out of range")
)

// MaxReps bounds the reps of a single set.
const MaxReps = math.MaxInt32

// ParseSetField maps user input ("weight", "Reps", ...) to a SetField.
func ParseSetField(s string) (SetField, error) {
	switch SetField(strings.ToLower(strings.TrimSpace(s))) {
	case FieldWeight:
		return FieldWeight, nil
	case FieldReps:
		return FieldReps, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetField, s)
	}
}

// WorkoutSet is one planned or performed set of an exercise.
// A set belongs to exactly one template or session at a time.
type WorkoutSet struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exerciseId"` // Link to the catalog Exercise
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Completed  bool      `json:"completed"`
}

// NewSetFrom copies exercise, weight and reps from src into a set with a fresh ID.
// The copy always starts out not completed.
func NewSetFrom(src WorkoutSet) WorkoutSet {
	return WorkoutSet{
		ID:         uuid.New(),
		ExerciseID: src.ExerciseID,
		Weight:     src.Weight,
		Reps:       src.Reps,
	}
}

// Validate checks the numeric bounds of the set.
func (s WorkoutSet) Validate() error {
	if err := checkValue(s.Weight); err != nil {
		return err
	}
	if s.Reps < 0 {
		return ErrNegativeValue
	}
	if s.Reps > MaxReps {
		return ErrRepsOutOfRange
	}
	return nil
}

// With returns a copy of the set with field updated to value.
func (s WorkoutSet) With(field SetField, value float64) (WorkoutSet, error) {
	if err := checkValue(value); err != nil {
		return s, err
	}
	switch field {
	case FieldWeight:
		s.Weight = value
	case FieldReps:
		if value > MaxReps {
			return s, ErrRepsOutOfRange
		}
		if value != math.Trunc(value) {
			return s, ErrFractionalReps
		}
		s.Reps = int(value)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownSetField, field)
	}
	return s, nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNonFiniteValue
	}
	if v < 0 {
		return ErrNegativeValue
	}
	return nil
}

// IndexOfSet returns the position of the set with the given ID, or -1.
func IndexOfSet(sets []WorkoutSet, id uuid.UUID) int {
	for i := range sets {
		if sets[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveSets returns sets without the given IDs, keeping the relative order of the rest,
// and the number of sets removed. Unknown IDs are ignored.
func RemoveSets(sets []WorkoutSet, ids ...uuid.UUID) ([]WorkoutSet, int) {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]WorkoutSet, 0, len(sets))
	for _, s := range sets {
		if _, ok := drop[s.ID]; ok {
			continue
		}
		kept = append(kept, s)
	}
	return kept, len(sets) - len(kept)
}

// WorkoutTemplate is a reusable, named plan made of an ordered list of sets.
type WorkoutTemplate struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"` // e.g., "Push Day", "Legs"
	Sets      []WorkoutSet `json:"sets"` // Order is user-visible ("Set 1", "Set 2")
	CreatedAt time.Time    `json:"createdAt"`
}

// Clone returns a copy of the template that shares no set storage with t.
func (t WorkoutTemplate) Clone() WorkoutTemplate {
	t.Sets = cloneSets(t.Sets)
	return t
}

func cloneSets(sets []WorkoutSet) []WorkoutSet {
	if sets == nil {
		return nil
	}
	out := make([]WorkoutSet, len(sets))
	copy(out, sets)
	return out
}

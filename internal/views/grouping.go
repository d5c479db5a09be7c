// Package views computes presentation groupings from store snapshots.
// Everything here is pure and recomputed on every render.
package views

import (
	"alcyxob/workout-tracker/internal/domain"
	"sort"

	"github.com/google/uuid"
)

// ExerciseLookup resolves an exercise id against the catalog.
type ExerciseLookup func(id uuid.UUID) (domain.Exercise, bool)

// Grouping holds sets grouped by exercise. Order records the exercise ids in the
// order their first set appeared.
type Grouping struct {
	Order     []uuid.UUID
	Exercises map[uuid.UUID]domain.Exercise
	Sets      map[uuid.UUID][]domain.WorkoutSet
}

// Len returns the number of groups.
func (g Grouping) Len() int {
	return len(g.Order)
}

// SetsFor returns the sets of one exercise in their original relative order.
func (g Grouping) SetsFor(exerciseID uuid.UUID) []domain.WorkoutSet {
	return g.Sets[exerciseID]
}

// Flatten concatenates the groups in first-appearance order.
func (g Grouping) Flatten() []domain.WorkoutSet {
	var out []domain.WorkoutSet
	for _, id := range g.Order {
		out = append(out, g.Sets[id]...)
	}
	return out
}

// GroupSetsByExercise groups sets by exercise, preserving insertion order inside
// each group. Sets whose exercise is unknown to lookup are grouped under a
// placeholder Exercise that only carries the id.
func GroupSetsByExercise(sets []domain.WorkoutSet, lookup ExerciseLookup) Grouping {
	g := Grouping{
		Exercises: make(map[uuid.UUID]domain.Exercise),
		Sets:      make(map[uuid.UUID][]domain.WorkoutSet),
	}
	for _, set := range sets {
		id := set.ExerciseID
		if _, seen := g.Exercises[id]; !seen {
			exercise := domain.Exercise{ID: id}
			if lookup != nil {
				if found, ok := lookup(id); ok {
					exercise = found
				}
			}
			g.Exercises[id] = exercise
			g.Order = append(g.Order, id)
		}
		g.Sets[id] = append(g.Sets[id], set)
	}
	return g
}

// SortedExerciseKeys returns the grouped exercises sorted by name, ascending,
// using plain byte-wise comparison. Equal names keep first-appearance order.
func SortedExerciseKeys(g Grouping) []domain.Exercise {
	keys := make([]domain.Exercise, 0, len(g.Order))
	for _, id := range g.Order {
		keys = append(keys, g.Exercises[id])
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys
}

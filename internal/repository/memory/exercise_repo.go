package memory

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
)

// memoryExerciseRepository implements repository.ExerciseRepository
type memoryExerciseRepository struct {
	exercises *collection[domain.Exercise]
}

// NewExerciseRepository creates a new in-memory exercise catalog.
func NewExerciseRepository() repository.ExerciseRepository {
	return &memoryExerciseRepository{
		exercises: newCollection(func(e domain.Exercise) domain.Exercise { return e }),
	}
}

// Create inserts a new exercise, assigning an ID if the caller left it empty.
func (r *memoryExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (uuid.UUID, error) {
	if exercise.Name == "" {
		return uuid.Nil, errors.New("exercise name is required")
	}
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	if err := r.exercises.insert(exercise.ID, *exercise); err != nil {
		return uuid.Nil, err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *memoryExerciseRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Exercise, error) {
	exercise, err := r.exercises.get(id)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// List returns the catalog in insertion order.
func (r *memoryExerciseRepository) List(_ context.Context) ([]domain.Exercise, error) {
	return r.exercises.list(), nil
}

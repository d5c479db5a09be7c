package repository

import (
	"alcyxob/workout-tracker/internal/domain" // Import our defined domain models
	"context"

	"github.com/google/uuid"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository defines the interface for the exercise catalog.
// Exercises are never removed.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error) // Insertion order
}

// TemplateRepository defines the interface for interacting with workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error)
	List(ctx context.Context) ([]domain.WorkoutTemplate, error)
	Update(ctx context.Context, template *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionRepository defines the interface for interacting with workout sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error)
	List(ctx context.Context) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
}

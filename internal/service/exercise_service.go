package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository" // Import repository package
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// ExerciseSeed describes a catalog entry created at start-up.
type ExerciseSeed struct {
	Name        string
	MuscleGroup string
}

// DefaultExerciseSeeds is the catalog used when the configuration provides none.
var DefaultExerciseSeeds = []ExerciseSeed{
	{Name: "Bench Press", MuscleGroup: "Chest"},
	{Name: "Overhead Press", MuscleGroup: "Shoulders"},
	{Name: "Squat", MuscleGroup: "Legs"},
	{Name: "Deadlift", MuscleGroup: "Back"},
	{Name: "Barbell Row", MuscleGroup: "Back"},
	{Name: "Pull Up", MuscleGroup: "Back"},
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, name, muscleGroup string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	Seed(ctx context.Context, seeds []ExerciseSeed) (int, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds a new exercise to the catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, name, muscleGroup string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed // Name is required
	}

	exercise := &domain.Exercise{
		Name:        name,
		MuscleGroup: strings.TrimSpace(muscleGroup),
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("creating exercise %q: %w", name, err)
	}
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err // Propagate other repository errors
	}
	return exercise, nil
}

// ListExercises returns the whole catalog in insertion order.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// Seed creates the given exercises, skipping names already in the catalog
// (case-insensitive). Returns the number of exercises created.
func (s *exerciseService) Seed(ctx context.Context, seeds []ExerciseSeed) (int, error) {
	existing, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(existing)+len(seeds))
	for _, ex := range existing {
		known[strings.ToLower(ex.Name)] = struct{}{}
	}

	created := 0
	for _, seed := range seeds {
		key := strings.ToLower(strings.TrimSpace(seed.Name))
		if _, dup := known[key]; dup {
			continue
		}
		if _, err := s.CreateExercise(ctx, seed.Name, seed.MuscleGroup); err != nil {
			return created, err
		}
		known[key] = struct{}{}
		created++
	}
	return created, nil
}

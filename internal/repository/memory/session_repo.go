package memory

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
)

// memorySessionRepository implements repository.SessionRepository
type memorySessionRepository struct {
	sessions *collection[domain.WorkoutSession]
}

// NewSessionRepository creates a new in-memory session repository.
func NewSessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: newCollection(domain.WorkoutSession.Clone),
	}
}

// Create inserts a new session.
func (r *memorySessionRepository) Create(_ context.Context, session *domain.WorkoutSession) (uuid.UUID, error) {
	if session.TemplateID == uuid.Nil {
		return uuid.Nil, errors.New("session requires a template ID")
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if err := r.sessions.insert(session.ID, *session); err != nil {
		return uuid.Nil, err
	}
	return session.ID, nil
}

// GetByID retrieves a single session by its ID.
func (r *memorySessionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	session, err := r.sessions.get(id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns all sessions in the order they were started.
func (r *memorySessionRepository) List(_ context.Context) ([]domain.WorkoutSession, error) {
	return r.sessions.list(), nil
}

// Update replaces the stored session with the same ID.
func (r *memorySessionRepository) Update(_ context.Context, session *domain.WorkoutSession) error {
	if session.ID == uuid.Nil {
		return errors.New("session ID is required for update")
	}
	return r.sessions.replace(session.ID, *session)
}

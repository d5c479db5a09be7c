package memory

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
)

// memoryTemplateRepository implements repository.TemplateRepository
type memoryTemplateRepository struct {
	templates *collection[domain.WorkoutTemplate]
}

// NewTemplateRepository creates a new in-memory template repository.
func NewTemplateRepository() repository.TemplateRepository {
	return &memoryTemplateRepository{
		templates: newCollection(domain.WorkoutTemplate.Clone),
	}
}

// Create inserts a new template. Names are not validated here.
func (r *memoryTemplateRepository) Create(_ context.Context, template *domain.WorkoutTemplate) (uuid.UUID, error) {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	if err := r.templates.insert(template.ID, *template); err != nil {
		return uuid.Nil, err
	}
	return template.ID, nil
}

// GetByID retrieves a template by its ID.
func (r *memoryTemplateRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	template, err := r.templates.get(id)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns all templates in creation order.
func (r *memoryTemplateRepository) List(_ context.Context) ([]domain.WorkoutTemplate, error) {
	return r.templates.list(), nil
}

// Update replaces the stored template with the same ID.
func (r *memoryTemplateRepository) Update(_ context.Context, template *domain.WorkoutTemplate) error {
	if template.ID == uuid.Nil {
		return errors.New("template ID is required for update")
	}
	return r.templates.replace(template.ID, *template)
}

// Delete removes a template. Sessions started from it keep their own sets.
func (r *memoryTemplateRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.templates.remove(id)
}

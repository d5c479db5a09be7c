package memory_test

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewExerciseRepository()

	var names []string
	for i := 0; i < 5; i++ {
		name := gofakeit.Noun()
		id, err := repo.Create(ctx, &domain.Exercise{Name: name})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)
		names = append(names, name)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, ex := range list {
		assert.Equal(t, names[i], ex.Name, "insertion order")
	}

	got, err := repo.GetByID(ctx, list[2].ID)
	require.NoError(t, err)
	assert.Equal(t, list[2], *got)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Exercise{ID: list[0].ID, Name: "Again"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.Create(ctx, &domain.Exercise{})
	assert.Error(t, err)
}

func TestTemplateRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTemplateRepository()

	template := &domain.WorkoutTemplate{
		Name:      "Push",
		Sets:      []domain.WorkoutSet{{ID: uuid.New(), Weight: 60, Reps: 5}},
		CreatedAt: time.Now(),
	}
	id, err := repo.Create(ctx, template)
	require.NoError(t, err)
	assert.Equal(t, template.ID, id)

	// writes through the caller's slice do not reach the store
	template.Sets[0].Weight = 1000

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.Sets[0].Weight)

	// nor do writes through a returned value
	got.Sets[0].Reps = 99
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, list[0].Sets[0].Reps)
}

func TestTemplateRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTemplateRepository()

	var ids []uuid.UUID
	for _, name := range []string{"A", "B", "C"} {
		id, err := repo.Create(ctx, &domain.WorkoutTemplate{Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := repo.GetByID(ctx, ids[1])
	require.NoError(t, err)
	got.Sets = append(got.Sets, domain.WorkoutSet{ID: uuid.New(), Reps: 3})
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Len(t, got.Sets, 1)

	assert.ErrorIs(t, repo.Update(ctx, &domain.WorkoutTemplate{ID: uuid.New()}), repository.ErrNotFound)
	assert.Error(t, repo.Update(ctx, &domain.WorkoutTemplate{}))

	require.NoError(t, repo.Delete(ctx, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), repository.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "C", list[1].Name)

	// deleted ids stay gone after later inserts
	_, err = repo.Create(ctx, &domain.WorkoutTemplate{Name: "D"})
	require.NoError(t, err)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()

	_, err := repo.Create(ctx, &domain.WorkoutSession{})
	assert.Error(t, err, "template id is required")

	session := &domain.WorkoutSession{
		TemplateID: uuid.New(),
		Sets:       []domain.WorkoutSet{{ID: uuid.New(), Reps: 5}},
		StartTime:  time.Now(),
	}
	id, err := repo.Create(ctx, session)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	end := got.StartTime.Add(time.Hour)
	got.EndTime = &end
	require.NoError(t, repo.Update(ctx, got))

	// changing the caller's end time afterwards has no effect
	end = end.Add(time.Hour)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.EndTime)
	assert.Equal(t, time.Hour, stored.EndTime.Sub(stored.StartTime))

	assert.ErrorIs(t, repo.Update(ctx, &domain.WorkoutSession{ID: uuid.New()}), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

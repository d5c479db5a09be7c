package console

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Items are addressed by their 1-based position in the listing or by uuid.

func position(arg string, n int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

func resolveTemplate(snap service.Snapshot, arg string) (domain.WorkoutTemplate, error) {
	if i, ok := position(arg, len(snap.Templates)); ok {
		return snap.Templates[i], nil
	}
	if id, err := uuid.Parse(arg); err == nil {
		if t, ok := snap.Template(id); ok {
			return t, nil
		}
	}
	return domain.WorkoutTemplate{}, fmt.Errorf("%w: template %q", errNoSuchItem, arg)
}

func resolveSession(snap service.Snapshot, arg string) (domain.WorkoutSession, error) {
	if i, ok := position(arg, len(snap.Sessions)); ok {
		return snap.Sessions[i], nil
	}
	if id, err := uuid.Parse(arg); err == nil {
		if s, ok := snap.Session(id); ok {
			return s, nil
		}
	}
	return domain.WorkoutSession{}, fmt.Errorf("%w: session %q", errNoSuchItem, arg)
}

// resolveExercise also accepts the exercise name, case-insensitive.
func resolveExercise(snap service.Snapshot, arg string) (domain.Exercise, error) {
	if i, ok := position(arg, len(snap.Exercises)); ok {
		return snap.Exercises[i], nil
	}
	if id, err := uuid.Parse(arg); err == nil {
		if ex, ok := snap.Exercise(id); ok {
			return ex, nil
		}
	}
	for _, ex := range snap.Exercises {
		if strings.EqualFold(ex.Name, arg) {
			return ex, nil
		}
	}
	return domain.Exercise{}, fmt.Errorf("%w: exercise %q", errNoSuchItem, arg)
}

// resolveSet addresses a set by its position in the container (#1, #2, ...).
func resolveSet(sets []domain.WorkoutSet, arg string) (domain.WorkoutSet, error) {
	if i, ok := position(strings.TrimPrefix(arg, "#"), len(sets)); ok {
		return sets[i], nil
	}
	return domain.WorkoutSet{}, fmt.Errorf("%w: set %q", errNoSuchItem, arg)
}

func resolveSetIDs(sets []domain.WorkoutSet, args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		set, err := resolveSet(sets, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, set.ID)
	}
	return ids, nil
}

package console

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/views"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func (c *Console) renderExercises(snap service.Snapshot) {
	if len(snap.Exercises) == 0 {
		c.printf("no exercises\n")
		return
	}
	for i, ex := range snap.Exercises {
		if ex.MuscleGroup != "" {
			c.printf("%d. %s (%s)\n", i+1, ex.Name, ex.MuscleGroup)
			continue
		}
		c.printf("%d. %s\n", i+1, ex.Name)
	}
}

func (c *Console) renderTemplates(snap service.Snapshot) {
	if len(snap.Templates) == 0 {
		c.printf("no templates\n")
		return
	}
	for i, t := range snap.Templates {
		c.printf("%d. %s (%d sets)\n", i+1, t.Name, len(t.Sets))
	}
}

func (c *Console) renderSessions(snap service.Snapshot) {
	if len(snap.Sessions) == 0 {
		c.printf("no sessions\n")
		return
	}
	for i, s := range snap.Sessions {
		c.printf("%d. %s [%s] %d sets, started %s\n",
			i+1, s.TemplateName, s.Status(), len(s.Sets), s.StartTime.Format(time.Kitchen))
	}
}

func (c *Console) renderTemplate(snap service.Snapshot, t domain.WorkoutTemplate) {
	c.printf("%s\n", t.Name)
	c.renderSets(snap, t.Sets)
}

func (c *Console) renderSession(snap service.Snapshot, s domain.WorkoutSession) {
	c.printf("%s [%s]\n", s.TemplateName, s.Status())
	c.renderSets(snap, s.Sets)
}

// renderSets prints sets grouped by exercise, exercises sorted by name. Set labels
// count within the group; #n is the position used by commands.
func (c *Console) renderSets(snap service.Snapshot, sets []domain.WorkoutSet) {
	if len(sets) == 0 {
		c.printf("  (no sets)\n")
		return
	}
	position := make(map[uuid.UUID]int, len(sets))
	for i, set := range sets {
		position[set.ID] = i + 1
	}

	grouping := views.GroupSetsByExercise(sets, snap.Exercise)
	for _, ex := range views.SortedExerciseKeys(grouping) {
		name := ex.Name
		if name == "" {
			name = "(unknown exercise)"
		}
		c.printf("  %s\n", name)
		for n, set := range grouping.SetsFor(ex.ID) {
			mark := ""
			if set.Completed {
				mark = " done"
			}
			c.printf("    Set %d  %s x %d%s  [#%d]\n", n+1, formatWeight(set.Weight), set.Reps, mark, position[set.ID])
		}
	}
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "kg"
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

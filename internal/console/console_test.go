package console

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer, *testClock) {
	t.Helper()
	ctx := context.Background()
	log := logrus.New()
	log.SetOutput(io.Discard)

	exercises := service.NewExerciseService(memory.NewExerciseRepository())
	_, err := exercises.Seed(ctx, []service.ExerciseSeed{
		{Name: "Squat", MuscleGroup: "Legs"},
		{Name: "Bench Press", MuscleGroup: "Chest"},
	})
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2024, 5, 6, 18, 0, 0, 0, time.UTC)}
	store, err := service.NewWorkoutStore(exercises, memory.NewTemplateRepository(), memory.NewSessionRepository(),
		service.WithClock(clock.Now), service.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	var out bytes.Buffer
	return New(store, &out, log), &out, clock
}

func TestConsole_Script(t *testing.T) {
	ctx := context.Background()
	c, out, clock := newTestConsole(t)

	script := `
# plan
template add "Push Day"
template set 1 "bench press" 60 5
template set 1 squat 100 3
start 1
record 1 1 reps 8
done 1 #1
dup 1
show template 1
bogus
quit
record 1 1 reps 12
`
	require.NoError(t, c.Run(ctx, strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "added template 1: Push Day\n")
	assert.Contains(t, got, "started session 1 from Push Day\n")
	// bench sorts before squat even though squat is first in the catalog
	assert.Contains(t, got, "Push Day [active]\n  Bench Press\n    Set 1  60kg x 8  [#1]\n  Squat\n    Set 1  100kg x 3  [#2]\n")
	assert.Contains(t, got, "    Set 1  60kg x 8 done  [#1]\n")
	// dup copies the last set, which is the squat
	assert.Contains(t, got, "  Squat\n    Set 1  100kg x 3  [#2]\n    Set 2  100kg x 3  [#3]\n")
	// the template keeps its planned reps
	assert.Contains(t, got, "Push Day\n  Bench Press\n    Set 1  60kg x 5  [#1]\n  Squat\n")
	assert.Contains(t, got, `error: unknown command "bogus", try help`)
	assert.NotContains(t, got, "x 12", "nothing runs after quit")

	out.Reset()
	clock.now = clock.now.Add(42 * time.Minute)
	require.NoError(t, c.Exec(ctx, "finish 1"))
	assert.Contains(t, out.String(), "finished Push Day after 42m0s\n")
	assert.Contains(t, out.String(), "Push Day [finished]\n")

	err := c.Exec(ctx, "record 1 1 reps 9")
	assert.ErrorIs(t, err, service.ErrSessionFinished)
}

func TestConsole_Errors(t *testing.T) {
	ctx := context.Background()
	c, out, _ := newTestConsole(t)

	tests := []struct {
		line    string
		wantErr error
	}{
		{line: "start 1", wantErr: errNoSuchItem},
		{line: "template", wantErr: errUsage},
		{line: "template frobnicate", wantErr: errUnknownCommand},
		{line: `template add "Push`, wantErr: errUnterminatedQuote},
		{line: "exercise add", wantErr: errUsage},
		{line: "show everything 1", wantErr: errUsage},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.ErrorIs(t, c.Exec(ctx, tt.line), tt.wantErr)
		})
	}

	require.NoError(t, c.Exec(ctx, "template add Legs"))
	require.NoError(t, c.Exec(ctx, "start 1"))
	assert.ErrorIs(t, c.Exec(ctx, "dup 1"), service.ErrSessionHasNoSets)
	assert.ErrorIs(t, c.Exec(ctx, "template set 1 deadlift 100 5"), errNoSuchItem)
	assert.Error(t, c.Exec(ctx, "template set 1 squat heavy 5"))
	assert.ErrorIs(t, c.Exec(ctx, "template set 1 squat NaN 5"), domain.ErrNonFiniteValue)
	assert.ErrorIs(t, c.Exec(ctx, "template set 1 squat Inf 5"), service.ErrInvalidSetValue)
	assert.Contains(t, out.String(), "  (no sets)\n")
}

func TestConsole_Listings(t *testing.T) {
	ctx := context.Background()
	c, out, _ := newTestConsole(t)

	require.NoError(t, c.Exec(ctx, "templates"))
	require.NoError(t, c.Exec(ctx, "sessions"))
	assert.Equal(t, "no templates\nno sessions\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec(ctx, "exercise add Dips Triceps"))
	require.NoError(t, c.Exec(ctx, "exercises"))
	assert.Equal(t, "added exercise Dips\n1. Squat (Legs)\n2. Bench Press (Chest)\n3. Dips (Triceps)\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec(ctx, `template add "Arm Day"`))
	require.NoError(t, c.Exec(ctx, "template set 1 3 0 12"))
	require.NoError(t, c.Exec(ctx, "template set 1 3 0 10"))
	require.NoError(t, c.Exec(ctx, "template edit 1 2 reps 8"))
	require.NoError(t, c.Exec(ctx, "template remove 1 1"))
	assert.Contains(t, out.String(), "removed 1 set(s)\nArm Day\n  Dips\n    Set 1  0kg x 8  [#1]\n")

	out.Reset()
	require.NoError(t, c.Exec(ctx, "start 1"))
	require.NoError(t, c.Exec(ctx, "template delete 1"))
	require.NoError(t, c.Exec(ctx, "templates"))
	require.NoError(t, c.Exec(ctx, "sessions"))
	got := out.String()
	assert.Contains(t, got, "deleted template Arm Day\nno templates\n")
	assert.Contains(t, got, "1. Arm Day [active] 1 sets, started 6:00PM\n")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "  templates  ", want: []string{"templates"}},
		{in: `template add "Push Day"`, want: []string{"template", "add", "Push Day"}},
		{in: `template set 1 'bench press' 60 5`, want: []string{"template", "set", "1", "bench press", "60", "5"}},
		{in: "a\tb", want: []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitArgs(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := splitArgs(`say "hello`)
	assert.ErrorIs(t, err, errUnterminatedQuote)
	_, err = splitArgs(`template add 'Push`)
	assert.ErrorIs(t, err, errUnterminatedQuote)

	_, err = splitArgs("templates; sessions")
	assert.ErrorIs(t, err, errShellOperator)

	got, err := splitArgs(`template add "Push | Pull; Legs"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"template", "add", "Push | Pull; Legs"}, got)

	got, err = splitArgs(`exercise add $HOME`)
	require.NoError(t, err)
	assert.Equal(t, []string{"exercise", "add", "$HOME"}, got, "no variable expansion")
}

// Package console is a line-oriented front end for the workout store. It turns
// text commands into store commands and renders the published snapshots.
package console

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errNoSuchItem     = errors.New("no such item")
)

// Store is the part of service.WorkoutStore the console drives.
type Store interface {
	Snapshot() service.Snapshot
	Subscribe() (<-chan service.Snapshot, func())

	AddExercise(ctx context.Context, name, muscleGroup string) (*domain.Exercise, error)

	AddTemplate(ctx context.Context, name string, sets []domain.WorkoutSet) (*domain.WorkoutTemplate, error)
	AddSetToTemplate(ctx context.Context, templateID uuid.UUID, set domain.WorkoutSet) (*domain.WorkoutSet, error)
	RecordTemplateSetValue(ctx context.Context, templateID, setID uuid.UUID, field domain.SetField, value float64) error
	DeleteSetsFromTemplate(ctx context.Context, templateID uuid.UUID, setIDs ...uuid.UUID) (int, error)
	DeleteTemplate(ctx context.Context, templateID uuid.UUID) error

	StartSession(ctx context.Context, templateID uuid.UUID) (*domain.WorkoutSession, error)
	RecordSetValue(ctx context.Context, sessionID, setID uuid.UUID, field domain.SetField, value float64) error
	SetCompleted(ctx context.Context, sessionID, setID uuid.UUID, completed bool) error
	DeleteSets(ctx context.Context, sessionID uuid.UUID, setIDs ...uuid.UUID) (int, error)
	DuplicateLastSet(ctx context.Context, sessionID uuid.UUID) (*domain.WorkoutSet, error)
	FinishSession(ctx context.Context, sessionID uuid.UUID) (*domain.WorkoutSession, error)
}

var _ Store = (*service.WorkoutStore)(nil)

// Console reads commands and writes rendered state to out.
type Console struct {
	store   Store
	out     io.Writer
	log     logrus.FieldLogger
	updates <-chan service.Snapshot
	snap    service.Snapshot
}

func New(store Store, out io.Writer, log logrus.FieldLogger) *Console {
	return &Console{
		store: store,
		out:   out,
		log:   log,
		snap:  store.Snapshot(),
	}
}

// Run executes commands from in until EOF, "quit" or ctx is done. Command errors
// are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	updates, unsubscribe := c.store.Subscribe()
	defer unsubscribe()
	c.updates = updates

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := c.Exec(ctx, line); err != nil {
			c.log.WithError(err).WithField("command", line).Debug("command failed")
			c.printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	snap := c.refresh()
	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "help":
		c.printf("%s", helpText)
		return nil
	case "exercises":
		c.renderExercises(snap)
		return nil
	case "exercise":
		return c.exerciseCmd(ctx, rest)
	case "templates":
		c.renderTemplates(snap)
		return nil
	case "template":
		return c.templateCmd(ctx, snap, rest)
	case "sessions":
		c.renderSessions(snap)
		return nil
	case "show":
		return c.show(snap, rest)
	case "start":
		return c.start(ctx, snap, rest)
	case "record", "done", "undo", "dup", "delete", "finish":
		return c.sessionCmd(ctx, snap, cmd, rest)
	default:
		return fmt.Errorf("%w %q, try help", errUnknownCommand, args[0])
	}
}

const helpText = `commands:
  exercises | templates | sessions
  exercise add <name> [muscle group]
  template add <name>
  template set <tpl> <exercise> <weight> <reps>
  template edit <tpl> <set#> weight|reps <value>
  template remove <tpl> <set#>...
  template delete <tpl>
  start <tpl>
  show template|session <n>
  record <session> <set#> weight|reps <value>
  done|undo <session> <set#>
  dup <session>
  delete <session> <set#>...
  finish <session>
  quit
`

// refresh picks up the newest published snapshot.
func (c *Console) refresh() service.Snapshot {
	if c.updates == nil {
		c.snap = c.store.Snapshot()
		return c.snap
	}
	select {
	case snap, ok := <-c.updates:
		if ok {
			c.snap = snap
		} else {
			c.updates = nil
			c.snap = c.store.Snapshot()
		}
	default:
	}
	return c.snap
}

func (c *Console) exerciseCmd(ctx context.Context, args []string) error {
	if len(args) < 2 || args[0] != "add" {
		return fmt.Errorf("%w: exercise add <name> [muscle group]", errUsage)
	}
	muscleGroup := ""
	if len(args) > 2 {
		muscleGroup = strings.Join(args[2:], " ")
	}
	exercise, err := c.store.AddExercise(ctx, args[1], muscleGroup)
	if err != nil {
		return err
	}
	c.printf("added exercise %s\n", exercise.Name)
	return nil
}

func (c *Console) templateCmd(ctx context.Context, snap service.Snapshot, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: template add|set|edit|remove|delete ...", errUsage)
	}
	switch args[0] {
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("%w: template add <name>", errUsage)
		}
		template, err := c.store.AddTemplate(ctx, args[1], nil)
		if err != nil {
			return err
		}
		c.printf("added template %d: %s\n", len(c.refresh().Templates), template.Name)
		return nil

	case "set":
		if len(args) != 5 {
			return fmt.Errorf("%w: template set <tpl> <exercise> <weight> <reps>", errUsage)
		}
		template, err := resolveTemplate(snap, args[1])
		if err != nil {
			return err
		}
		exercise, err := resolveExercise(snap, args[2])
		if err != nil {
			return err
		}
		weight, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		reps, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("reps: %w", err)
		}
		set := domain.WorkoutSet{ExerciseID: exercise.ID, Weight: weight, Reps: reps}
		if _, err := c.store.AddSetToTemplate(ctx, template.ID, set); err != nil {
			return err
		}
		return c.showTemplate(template.ID)

	case "edit":
		if len(args) != 5 {
			return fmt.Errorf("%w: template edit <tpl> <set#> weight|reps <value>", errUsage)
		}
		template, err := resolveTemplate(snap, args[1])
		if err != nil {
			return err
		}
		set, err := resolveSet(template.Sets, args[2])
		if err != nil {
			return err
		}
		field, value, err := parseFieldValue(args[3], args[4])
		if err != nil {
			return err
		}
		if err := c.store.RecordTemplateSetValue(ctx, template.ID, set.ID, field, value); err != nil {
			return err
		}
		return c.showTemplate(template.ID)

	case "remove":
		if len(args) < 3 {
			return fmt.Errorf("%w: template remove <tpl> <set#>...", errUsage)
		}
		template, err := resolveTemplate(snap, args[1])
		if err != nil {
			return err
		}
		ids, err := resolveSetIDs(template.Sets, args[2:])
		if err != nil {
			return err
		}
		removed, err := c.store.DeleteSetsFromTemplate(ctx, template.ID, ids...)
		if err != nil {
			return err
		}
		c.printf("removed %d set(s)\n", removed)
		return c.showTemplate(template.ID)

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("%w: template delete <tpl>", errUsage)
		}
		template, err := resolveTemplate(snap, args[1])
		if err != nil {
			return err
		}
		if err := c.store.DeleteTemplate(ctx, template.ID); err != nil {
			return err
		}
		c.printf("deleted template %s\n", template.Name)
		return nil

	default:
		return fmt.Errorf("%w: template %s", errUnknownCommand, args[0])
	}
}

func (c *Console) start(ctx context.Context, snap service.Snapshot, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: start <tpl>", errUsage)
	}
	template, err := resolveTemplate(snap, args[0])
	if err != nil {
		return err
	}
	session, err := c.store.StartSession(ctx, template.ID)
	if err != nil {
		return err
	}
	c.printf("started session %d from %s\n", len(c.refresh().Sessions), template.Name)
	return c.showSession(session.ID)
}

func (c *Console) sessionCmd(ctx context.Context, snap service.Snapshot, cmd string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s <session> ...", errUsage, cmd)
	}
	session, err := resolveSession(snap, args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	switch cmd {
	case "record":
		if len(args) != 3 {
			return fmt.Errorf("%w: record <session> <set#> weight|reps <value>", errUsage)
		}
		set, err := resolveSet(session.Sets, args[0])
		if err != nil {
			return err
		}
		field, value, err := parseFieldValue(args[1], args[2])
		if err != nil {
			return err
		}
		err = c.store.RecordSetValue(ctx, session.ID, set.ID, field, value)
		if err != nil {
			return err
		}

	case "done", "undo":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s <session> <set#>", errUsage, cmd)
		}
		set, err := resolveSet(session.Sets, args[0])
		if err != nil {
			return err
		}
		if err := c.store.SetCompleted(ctx, session.ID, set.ID, cmd == "done"); err != nil {
			return err
		}

	case "dup":
		if _, err := c.store.DuplicateLastSet(ctx, session.ID); err != nil {
			return err
		}

	case "delete":
		ids, err := resolveSetIDs(session.Sets, args)
		if err != nil {
			return err
		}
		removed, err := c.store.DeleteSets(ctx, session.ID, ids...)
		if err != nil {
			return err
		}
		c.printf("removed %d set(s)\n", removed)

	case "finish":
		finished, err := c.store.FinishSession(ctx, session.ID)
		if err != nil {
			return err
		}
		c.printf("finished %s after %s\n", finished.TemplateName, formatDuration(finished.EndTime.Sub(finished.StartTime)))
	}
	return c.showSession(session.ID)
}

func (c *Console) show(snap service.Snapshot, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: show template|session <n>", errUsage)
	}
	switch args[0] {
	case "template":
		template, err := resolveTemplate(snap, args[1])
		if err != nil {
			return err
		}
		return c.showTemplate(template.ID)
	case "session":
		session, err := resolveSession(snap, args[1])
		if err != nil {
			return err
		}
		return c.showSession(session.ID)
	default:
		return fmt.Errorf("%w: show template|session <n>", errUsage)
	}
}

func (c *Console) showTemplate(id uuid.UUID) error {
	snap := c.refresh()
	template, ok := snap.Template(id)
	if !ok {
		return fmt.Errorf("%w: template %s", errNoSuchItem, id)
	}
	c.renderTemplate(snap, template)
	return nil
}

func (c *Console) showSession(id uuid.UUID) error {
	snap := c.refresh()
	session, ok := snap.Session(id)
	if !ok {
		return fmt.Errorf("%w: session %s", errNoSuchItem, id)
	}
	c.renderSession(snap, session)
	return nil
}

func (c *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.log.WithError(err).Warn("console write failed")
	}
}

func parseFieldValue(fieldArg, valueArg string) (domain.SetField, float64, error) {
	field, err := domain.ParseSetField(fieldArg)
	if err != nil {
		return "", 0, err
	}
	value, err := strconv.ParseFloat(valueArg, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", field, err)
	}
	return field, value, nil
}

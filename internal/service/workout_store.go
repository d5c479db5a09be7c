package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSetNotFound      = errors.New("set not found")
	ErrInvalidSetValue  = errors.New("invalid set value")
	ErrSessionFinished  = errors.New("session is already finished")
	ErrSessionHasNoSets = errors.New("session has no sets")
)

// IsNotFound reports whether err is a reference-not-found error: the command
// named an entity that does not exist and left the store unchanged.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSetNotFound) ||
		errors.Is(err, ErrExerciseNotFound)
}

// Clock returns the current time.
type Clock func() time.Time

// StoreOption configures a WorkoutStore.
type StoreOption func(*WorkoutStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock Clock) StoreOption {
	return func(s *WorkoutStore) { s.now = clock }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(log logrus.FieldLogger) StoreOption {
	return func(s *WorkoutStore) { s.log = log }
}

// WithFinishedSessionLock controls whether finished sessions reject set edits.
func WithFinishedSessionLock(lock bool) StoreOption {
	return func(s *WorkoutStore) { s.lockFinished = lock }
}

// WorkoutStore is the single authoritative owner of exercises, templates and sessions.
// Commands are serialized; each one either fully applies or returns an error and
// leaves the state untouched. A fresh Snapshot is published before a successful
// command returns.
type WorkoutStore struct {
	exercises    ExerciseService
	templateRepo repository.TemplateRepository
	sessionRepo  repository.SessionRepository

	mu       sync.Mutex // serializes commands
	current  atomic.Pointer[Snapshot]
	version  uint64
	observer *broadcaster

	now          Clock
	log          logrus.FieldLogger
	lockFinished bool
}

// NewWorkoutStore builds a store over the given catalog and repositories and
// publishes the initial snapshot.
func NewWorkoutStore(
	exercises ExerciseService,
	templateRepo repository.TemplateRepository,
	sessionRepo repository.SessionRepository,
	opts ...StoreOption,
) (*WorkoutStore, error) {
	s := &WorkoutStore{
		exercises:    exercises,
		templateRepo: templateRepo,
		sessionRepo:  sessionRepo,
		observer:     newBroadcaster(),
		now:          time.Now,
		log:          logrus.StandardLogger(),
		lockFinished: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := s.buildSnapshot(context.Background())
	if err != nil {
		return nil, fmt.Errorf("building initial snapshot: %w", err)
	}
	s.current.Store(snap)
	return s, nil
}

// === Observation ===

// Snapshot returns the latest published state.
func (s *WorkoutStore) Snapshot() Snapshot {
	return *s.current.Load()
}

// Subscribe registers for change notifications. The channel immediately holds the
// current snapshot and afterwards the newest snapshot not yet received. Call the
// returned func to unsubscribe; it closes the channel.
func (s *WorkoutStore) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer.subscribe(s.Snapshot())
}

// Close ends every subscription. Commands keep working but are no longer broadcast.
func (s *WorkoutStore) Close() {
	s.observer.close()
}

// === Exercise catalog ===

// AddExercise extends the catalog.
func (s *WorkoutStore) AddExercise(ctx context.Context, name, muscleGroup string) (*domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercise, err := s.exercises.CreateExercise(ctx, name, muscleGroup)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"exercise_id": exercise.ID, "name": exercise.Name}).Debug("exercise added")
	return exercise, s.publish(ctx)
}

func (s *WorkoutStore) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exercises.ListExercises(ctx)
}

func (s *WorkoutStore) GetExercise(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	return s.exercises.GetExerciseByID(ctx, id)
}

// === Templates ===

// AddTemplate creates a template. Names are not validated. Every supplied set is
// copied with a fresh ID and must reference a catalog exercise, so AddTemplate
// fails with ErrExerciseNotFound for an unknown exercise and ErrInvalidSetValue
// for a negative, non-finite or out-of-range value. Nothing is stored on failure.
func (s *WorkoutStore) AddTemplate(ctx context.Context, name string, sets []domain.WorkoutSet) (*domain.WorkoutTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copies := make([]domain.WorkoutSet, 0, len(sets))
	for _, set := range sets {
		fresh, err := s.newTemplateSet(ctx, set)
		if err != nil {
			return nil, s.rejected("add template", err, logrus.Fields{"name": name})
		}
		copies = append(copies, fresh)
	}

	template := &domain.WorkoutTemplate{
		Name:      name,
		Sets:      copies,
		CreatedAt: s.now(),
	}
	if _, err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}

	s.log.WithFields(logrus.Fields{"template_id": template.ID, "sets": len(copies)}).Debug("template added")
	return template, s.publish(ctx)
}

// AddSetToTemplate appends a copy of set, with a fresh ID, to the template.
func (s *WorkoutStore) AddSetToTemplate(ctx context.Context, templateID uuid.UUID, set domain.WorkoutSet) (*domain.WorkoutSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := logrus.Fields{"template_id": templateID}
	template, err := s.loadTemplate(ctx, templateID)
	if err != nil {
		return nil, s.rejected("add set to template", err, fields)
	}
	fresh, err := s.newTemplateSet(ctx, set)
	if err != nil {
		return nil, s.rejected("add set to template", err, fields)
	}

	template.Sets = append(template.Sets, fresh)
	if err := s.saveTemplate(ctx, template); err != nil {
		return nil, err
	}
	return &fresh, nil
}

// RecordTemplateSetValue edits the weight or reps of a template set in place.
func (s *WorkoutStore) RecordTemplateSetValue(ctx context.Context, templateID, setID uuid.UUID, field domain.SetField, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := logrus.Fields{"template_id": templateID, "set_id": setID, "field": field}
	template, err := s.loadTemplate(ctx, templateID)
	if err != nil {
		return s.rejected("record template set value", err, fields)
	}
	i := domain.IndexOfSet(template.Sets, setID)
	if i < 0 {
		return s.rejected("record template set value", ErrSetNotFound, fields)
	}
	updated, err := template.Sets[i].With(field, value)
	if err != nil {
		return s.rejected("record template set value", fmt.Errorf("%w: %w", ErrInvalidSetValue, err), fields)
	}

	template.Sets[i] = updated
	return s.saveTemplate(ctx, template)
}

// DeleteSetsFromTemplate removes the given sets, keeping the order of the rest.
// Unknown set IDs are skipped. Returns the number of sets removed.
func (s *WorkoutStore) DeleteSetsFromTemplate(ctx context.Context, templateID uuid.UUID, setIDs ...uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	template, err := s.loadTemplate(ctx, templateID)
	if err != nil {
		return 0, s.rejected("delete template sets", err, logrus.Fields{"template_id": templateID})
	}

	var removed int
	template.Sets, removed = domain.RemoveSets(template.Sets, setIDs...)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveTemplate(ctx, template)
}

// DeleteTemplate removes a template. Sessions started from it are kept.
func (s *WorkoutStore) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		return s.rejected("delete template", mapNotFound(err, ErrTemplateNotFound), logrus.Fields{"template_id": templateID})
	}
	s.log.WithField("template_id", templateID).Debug("template deleted")
	return s.publish(ctx)
}

func (s *WorkoutStore) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.List(ctx)
}

func (s *WorkoutStore) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTemplateNotFound)
	}
	return template, nil
}

// === Sessions ===

// StartSession creates a session whose sets are value copies of the template's
// current sets, each with a new ID. No session is created if the template is missing.
func (s *WorkoutStore) StartSession(ctx context.Context, templateID uuid.UUID) (*domain.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	template, err := s.loadTemplate(ctx, templateID)
	if err != nil {
		return nil, s.rejected("start session", err, logrus.Fields{"template_id": templateID})
	}

	session := domain.NewSessionFromTemplate(*template, s.now())
	if _, err := s.sessionRepo.Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.log.WithFields(logrus.Fields{"session_id": session.ID, "template_id": templateID}).Debug("session started")
	return &session, s.publish(ctx)
}

// RecordSetValue updates the weight or reps of one session set in place.
func (s *WorkoutStore) RecordSetValue(ctx context.Context, sessionID, setID uuid.UUID, field domain.SetField, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := logrus.Fields{"session_id": sessionID, "set_id": setID, "field": field}
	session, err := s.loadEditableSession(ctx, sessionID)
	if err != nil {
		return s.rejected("record set value", err, fields)
	}
	i := domain.IndexOfSet(session.Sets, setID)
	if i < 0 {
		return s.rejected("record set value", ErrSetNotFound, fields)
	}
	updated, err := session.Sets[i].With(field, value)
	if err != nil {
		return s.rejected("record set value", fmt.Errorf("%w: %w", ErrInvalidSetValue, err), fields)
	}

	session.Sets[i] = updated
	return s.saveSession(ctx, session)
}

// SetCompleted marks a session set as done (or not done).
func (s *WorkoutStore) SetCompleted(ctx context.Context, sessionID, setID uuid.UUID, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := logrus.Fields{"session_id": sessionID, "set_id": setID}
	session, err := s.loadEditableSession(ctx, sessionID)
	if err != nil {
		return s.rejected("set completed", err, fields)
	}
	i := domain.IndexOfSet(session.Sets, setID)
	if i < 0 {
		return s.rejected("set completed", ErrSetNotFound, fields)
	}
	if session.Sets[i].Completed == completed {
		return nil
	}

	session.Sets[i].Completed = completed
	return s.saveSession(ctx, session)
}

// DeleteSets removes the given sets from a session, keeping the order of the rest.
// Unknown set IDs are skipped. Returns the number of sets removed.
func (s *WorkoutStore) DeleteSets(ctx context.Context, sessionID uuid.UUID, setIDs ...uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadEditableSession(ctx, sessionID)
	if err != nil {
		return 0, s.rejected("delete sets", err, logrus.Fields{"session_id": sessionID})
	}

	var removed int
	session.Sets, removed = domain.RemoveSets(session.Sets, setIDs...)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveSession(ctx, session)
}

// DuplicateLastSet appends a copy of the session's last set (same exercise, weight
// and reps, not completed, new ID).
func (s *WorkoutStore) DuplicateLastSet(ctx context.Context, sessionID uuid.UUID) (*domain.WorkoutSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := logrus.Fields{"session_id": sessionID}
	session, err := s.loadEditableSession(ctx, sessionID)
	if err != nil {
		return nil, s.rejected("duplicate last set", err, fields)
	}
	if len(session.Sets) == 0 {
		return nil, s.rejected("duplicate last set", ErrSessionHasNoSets, fields)
	}

	dup := domain.NewSetFrom(session.Sets[len(session.Sets)-1])
	session.Sets = append(session.Sets, dup)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &dup, nil
}

// FinishSession stamps the end time. Finishing is terminal: finishing an already
// finished session changes nothing and returns it with its original end time.
func (s *WorkoutStore) FinishSession(ctx context.Context, sessionID uuid.UUID) (*domain.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, s.rejected("finish session", err, logrus.Fields{"session_id": sessionID})
	}
	if session.IsFinished() {
		s.log.WithField("session_id", sessionID).Debug("session already finished")
		return session, nil
	}

	end := s.now()
	if end.Before(session.StartTime) {
		end = session.StartTime
	}
	session.EndTime = &end
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *WorkoutStore) ListSessions(ctx context.Context) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.List(ctx)
}

func (s *WorkoutStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// === Helpers (callers hold s.mu) ===

func (s *WorkoutStore) newTemplateSet(ctx context.Context, set domain.WorkoutSet) (domain.WorkoutSet, error) {
	if err := set.Validate(); err != nil {
		return domain.WorkoutSet{}, fmt.Errorf("%w: %w", ErrInvalidSetValue, err)
	}
	if _, err := s.exercises.GetExerciseByID(ctx, set.ExerciseID); err != nil {
		return domain.WorkoutSet{}, err
	}
	return domain.NewSetFrom(set), nil
}

func (s *WorkoutStore) loadTemplate(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTemplateNotFound)
	}
	return template, nil
}

func (s *WorkoutStore) saveTemplate(ctx context.Context, template *domain.WorkoutTemplate) error {
	if err := s.templateRepo.Update(ctx, template); err != nil {
		return fmt.Errorf("updating template %s: %w", template.ID, mapNotFound(err, ErrTemplateNotFound))
	}
	return s.publish(ctx)
}

func (s *WorkoutStore) loadSession(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// loadEditableSession also enforces the finished-session lock.
func (s *WorkoutStore) loadEditableSession(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.lockFinished && session.IsFinished() {
		return nil, ErrSessionFinished
	}
	return session, nil
}

func (s *WorkoutStore) saveSession(ctx context.Context, session *domain.WorkoutSession) error {
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("updating session %s: %w", session.ID, mapNotFound(err, ErrSessionNotFound))
	}
	return s.publish(ctx)
}

// rejected logs a command that left the store unchanged and returns err.
func (s *WorkoutStore) rejected(op string, err error, fields logrus.Fields) error {
	s.log.WithFields(fields).WithError(err).Debugf("%s: no-op", op)
	return err
}

func (s *WorkoutStore) publish(ctx context.Context) error {
	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	s.current.Store(snap)
	s.observer.publish(*snap)
	return nil
}

func (s *WorkoutStore) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	exercises, err := s.exercises.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.version++
	return &Snapshot{
		Version:   s.version,
		TakenAt:   s.now(),
		Exercises: exercises,
		Templates: templates,
		Sessions:  sessions,
	}, nil
}

func mapNotFound(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}

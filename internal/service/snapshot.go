package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the full store state as observed at one point in time.
// Snapshots are shared between observers and must be treated as read-only.
type Snapshot struct {
	Version   uint64                   `json:"version"` // Incremented by every applied command
	TakenAt   time.Time                `json:"takenAt"`
	Exercises []domain.Exercise        `json:"exercises"`
	Templates []domain.WorkoutTemplate `json:"templates"`
	Sessions  []domain.WorkoutSession  `json:"sessions"`
}

// Exercise looks up a catalog entry. Its signature matches the lookup used by
// views.GroupSetsByExercise.
func (s Snapshot) Exercise(id uuid.UUID) (domain.Exercise, bool) {
	for _, ex := range s.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

func (s Snapshot) Template(id uuid.UUID) (domain.WorkoutTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return domain.WorkoutTemplate{}, false
}

func (s Snapshot) Session(id uuid.UUID) (domain.WorkoutSession, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return domain.WorkoutSession{}, false
}

// ActiveSessions returns the sessions that have not been finished yet.
func (s Snapshot) ActiveSessions() []domain.WorkoutSession {
	var active []domain.WorkoutSession
	for _, sess := range s.Sessions {
		if !sess.IsFinished() {
			active = append(active, sess)
		}
	}
	return active
}

// broadcaster fans snapshots out to subscribers. Each subscriber has a single-slot
// channel holding the newest undelivered snapshot; older ones are dropped.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Snapshot)}
}

func (b *broadcaster) subscribe(initial Snapshot) (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- initial

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale snapshot nobody has read yet.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

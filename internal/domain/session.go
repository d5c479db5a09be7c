package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus type for session lifecycle
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionFinished SessionStatus = "finished" // EndTime is set, terminal
)

// WorkoutSession is one timed performance of a WorkoutTemplate.
// Its sets are independent copies; editing them never touches the template.
type WorkoutSession struct {
	ID           uuid.UUID    `json:"id"`
	TemplateID   uuid.UUID    `json:"templateId"`   // Template the session was started from
	TemplateName string       `json:"templateName"` // Name of the template at start time
	Sets         []WorkoutSet `json:"sets"`
	StartTime    time.Time    `json:"startTime"`
	EndTime      *time.Time   `json:"endTime,omitempty"` // nil while the session is active
}

// NewSessionFromTemplate copies the template's current sets by value, giving every
// copied set a new ID, and stamps the start time.
func NewSessionFromTemplate(t WorkoutTemplate, startedAt time.Time) WorkoutSession {
	sets := make([]WorkoutSet, 0, len(t.Sets))
	for _, s := range t.Sets {
		sets = append(sets, NewSetFrom(s))
	}
	return WorkoutSession{
		ID:           uuid.New(),
		TemplateID:   t.ID,
		TemplateName: t.Name,
		Sets:         sets,
		StartTime:    startedAt,
	}
}

// Status derives the lifecycle state from EndTime.
func (s WorkoutSession) Status() SessionStatus {
	if s.EndTime != nil {
		return SessionFinished
	}
	return SessionActive
}

func (s WorkoutSession) IsFinished() bool {
	return s.Status() == SessionFinished
}

// Duration is the elapsed time of a finished session, or the time since start until now.
func (s WorkoutSession) Duration(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// Clone returns a copy of the session that shares no mutable storage with s.
func (s WorkoutSession) Clone() WorkoutSession {
	s.Sets = cloneSets(s.Sets)
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	return s
}

package domain

import (
	"time"
)

// SessionOutcome records how a focus session ended.
type SessionOutcome string

const (
	SessionOutcomeCompleted SessionOutcome = "completed"
	SessionOutcomeStopped   SessionOutcome = "stopped"
)

// FocusSession is the journal entry written when a session ends.
type FocusSession struct {
	ID        string
	Length    time.Duration
	StartedAt time.Time
	EndedAt   time.Time
	Paused    time.Duration
	Outcome   SessionOutcome
}

// NewFocusSession creates a journal entry for a session of the given length.
func NewFocusSession(length time.Duration, startedAt time.Time) *FocusSession {
	return &FocusSession{
		ID:        generateID(),
		Length:    length,
		StartedAt: startedAt,
	}
}

// Finish stamps the end of the session.
func (s *FocusSession) Finish(outcome SessionOutcome, endedAt time.Time, paused time.Duration) {
	s.Outcome = outcome
	s.EndedAt = endedAt
	s.Paused = paused
}

// Focused returns the wall time spent running, excluding pauses.
func (s *FocusSession) Focused() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	d := s.EndedAt.Sub(s.StartedAt) - s.Paused
	if d < 0 {
		return 0
	}
	if d > s.Length {
		return s.Length
	}
	return d
}

// GetOutcomeLabel returns a human-readable label for the outcome.
func GetOutcomeLabel(o SessionOutcome) string {
	switch o {
	case SessionOutcomeCompleted:
		return "Completed"
	case SessionOutcomeStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

package domain

import "time"

// Visit is one entry in a session's navigation history.
type Visit struct {
	Number int
	Text   string
}

// Session is the per-user state of one recipe walkthrough. Current is the
// 1-based number of the selected step; 0 means no step has been selected
// yet. Visits is append-only and never de-duplicated: revisiting step 2
// twice appends it twice.
type Session struct {
	ID          string
	Recipe      *Recipe
	Current     int
	Visits      []Visit
	TimerStates map[string]*TimerState
	Status      SessionStatus
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy of the session's mutable state: the visit
// history and timer states are copied, never aliased. The Recipe pointer
// is shared because recipes are immutable once parsed.
func (s *Session) Clone() *Session {
	out := *s
	if s.Visits != nil {
		out.Visits = make([]Visit, len(s.Visits))
		copy(out.Visits, s.Visits)
	}
	if s.TimerStates != nil {
		out.TimerStates = make(map[string]*TimerState, len(s.TimerStates))
		for id, ts := range s.TimerStates {
			c := *ts
			out.TimerStates[id] = &c
		}
	}
	return &out
}

// SessionStatus tracks the lifecycle of a walkthrough session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionCompleted
	SessionAbandoned
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	case SessionAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// TimerState tracks a running timer within a session.
type TimerState struct {
	ID           string
	StepNumber   int
	Label        string
	Duration     time.Duration
	Remaining    time.Duration
	Status       TimerStatus
	LastNotified time.Time
	Escalation   int
}

// TimerStatus represents the state of a timer.
type TimerStatus int

const (
	TimerPending TimerStatus = iota
	TimerRunning
	TimerFired
	TimerDismissed
)

// String returns a human-readable timer status.
func (t TimerStatus) String() string {
	switch t {
	case TimerPending:
		return "pending"
	case TimerRunning:
		return "running"
	case TimerFired:
		return "fired"
	case TimerDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Package timer implements the background supervisor that counts down
// step timers in active sessions and announces when they expire.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor checks timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated expiry reminders.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which an expired
// timer is dismissed and stops nagging.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// Supervisor runs in the background, decrementing running timers and
// firing notifications when they expire.
type Supervisor struct {
	store          domain.SessionStore
	notifier       domain.Notifier
	log            *logger.Logger
	tickInterval   time.Duration
	notifyCooldown time.Duration
	maxEscalation  int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a timer supervisor with the given dependencies and options.
func New(store domain.SessionStore, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		store:          store,
		notifier:       notifier,
		log:            log,
		tickInterval:   1 * time.Second,
		notifyCooldown: 15 * time.Second,
		maxEscalation:  3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop gracefully shuts down the supervisor.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("timer supervisor stopped")
}

// loop is the main tick loop.
func (s *Supervisor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle across every active session.
func (s *Supervisor) tick(ctx context.Context) {
	sessions, err := s.store.ListActive(ctx)
	if err != nil {
		s.log.Error("supervisor: listing active sessions: %v", err)
		return
	}

	for _, session := range sessions {
		s.processSession(ctx, session)
	}
}

// processSession decrements running timers in one session, fires the
// expiry announcement, and escalates fired timers until dismissal.
func (s *Supervisor) processSession(ctx context.Context, session *domain.Session) {
	if session.Status != domain.SessionActive {
		return
	}

	changed := false
	now := time.Now()

	for _, ts := range session.TimerStates {
		if ts.Status != domain.TimerRunning {
			continue
		}

		ts.Remaining -= s.tickInterval
		changed = true

		if ts.Remaining > 0 {
			continue
		}

		ts.Remaining = 0
		ts.Status = domain.TimerFired
		s.log.Debug("timer %s fired for session %s", ts.ID, session.ID)

		if err := s.notifier.NotifyUrgent(ctx, s.escalationMessage(ts)); err != nil {
			s.log.Error("supervisor: notifying timer fire: %v", err)
		}
		ts.LastNotified = now
		ts.Escalation = 1
	}

	// Fired timers keep reminding until the escalation cap, then go quiet.
	for _, ts := range session.TimerStates {
		if ts.Status != domain.TimerFired {
			continue
		}

		if ts.Escalation > s.maxEscalation {
			ts.Status = domain.TimerDismissed
			changed = true
			continue
		}

		if !ts.LastNotified.IsZero() && now.Sub(ts.LastNotified) < s.notifyCooldown {
			continue
		}

		if err := s.notifier.Notify(ctx, s.escalationMessage(ts)); err != nil {
			s.log.Error("supervisor: escalation notify: %v", err)
		}
		ts.LastNotified = now
		ts.Escalation++
		changed = true
	}

	if changed {
		if err := s.store.Save(ctx, session); err != nil {
			s.log.Error("supervisor: saving session %s: %v", session.ID, err)
		}
	}
}

// escalationMessage returns a progressively more insistent reminder.
func (s *Supervisor) escalationMessage(ts *domain.TimerState) string {
	label := ts.Label
	if label == "" {
		label = fmt.Sprintf("step %d timer", ts.StepNumber)
	}
	switch ts.Escalation {
	case 0:
		return fmt.Sprintf("[Timer] %s is up.", label)
	case 1:
		return fmt.Sprintf("[Timer] %s -- check it now.", label)
	default:
		return fmt.Sprintf("[Timer] %s.", label)
	}
}

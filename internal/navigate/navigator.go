// Package navigate implements the step-navigation state machine: a
// cursor over a session's atomic steps plus an append-only visit history.
//
// Conventions, applied end-to-end: step numbers are 1-based; a current
// position of 0 means no step has been selected yet; out-of-range moves
// are rejected, never clamped or wrapped, and a rejected move mutates
// neither the cursor nor the history.
package navigate

import (
	"fmt"

	"github.com/mirepoix/souschef/internal/domain"
)

// Navigator is a thin state machine over one session. It mutates the
// session in place; the caller owns persistence.
type Navigator struct {
	session *domain.Session
}

// New wraps a session with navigation operations.
func New(session *domain.Session) *Navigator {
	return &Navigator{session: session}
}

// Len returns the total number of steps.
func (n *Navigator) Len() int {
	return len(n.session.Recipe.Steps)
}

// JumpTo selects step number num (1-based). On success the step is
// appended to the visit history, revisits included.
func (n *Navigator) JumpTo(num int) (*domain.Step, error) {
	steps := n.session.Recipe.Steps
	if num < 1 || num > len(steps) {
		return nil, fmt.Errorf("%w: step %d of %d", domain.ErrInvalidStepIndex, num, len(steps))
	}

	step := &steps[num-1]
	n.session.Current = num
	n.session.Visits = append(n.session.Visits, domain.Visit{
		Number: step.Number,
		Text:   step.Description,
	})
	return step, nil
}

// Move shifts the cursor by delta steps; negative deltas move backward.
// Fails with ErrNoCurrentStep before the first navigation and with
// ErrInvalidStepIndex when the target falls outside [1, N].
func (n *Navigator) Move(delta int) (*domain.Step, error) {
	if n.session.Current == 0 {
		return nil, domain.ErrNoCurrentStep
	}
	return n.JumpTo(n.session.Current + delta)
}

// Next advances one step.
func (n *Navigator) Next() (*domain.Step, error) {
	return n.Move(1)
}

// Previous moves back one step.
func (n *Navigator) Previous() (*domain.Step, error) {
	return n.Move(-1)
}

// Current returns the selected step without touching the history.
func (n *Navigator) Current() (*domain.Step, error) {
	if n.session.Current == 0 {
		return nil, domain.ErrNoCurrentStep
	}
	return &n.session.Recipe.Steps[n.session.Current-1], nil
}

// History returns the verbatim visit log in visitation order.
func (n *Navigator) History() []domain.Visit {
	return n.session.Visits
}

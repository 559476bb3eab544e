package navigate

import (
	"errors"
	"testing"

	"github.com/mirepoix/souschef/internal/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		ID: "nav-test",
		Recipe: &domain.Recipe{
			URL: "https://www.allrecipes.com/recipe/1/test/",
			Steps: []domain.Step{
				{Number: 1, Description: "Preheat the oven to 350 degrees F."},
				{Number: 2, Description: "Mix the flour and eggs."},
				{Number: 3, Description: "Bake for 45 minutes."},
			},
		},
	}
}

func TestJumpTo(t *testing.T) {
	nav := New(testSession())

	step, err := nav.JumpTo(2)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if step.Number != 2 {
		t.Fatalf("expected step 2, got %d", step.Number)
	}
}

func TestJumpToOutOfRange(t *testing.T) {
	session := testSession()
	nav := New(session)

	if _, err := nav.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}

	for _, num := range []int{0, -1, 4, 100} {
		_, err := nav.JumpTo(num)
		if !errors.Is(err, domain.ErrInvalidStepIndex) {
			t.Fatalf("jump %d: expected ErrInvalidStepIndex, got %v", num, err)
		}
	}

	// A rejected jump mutates neither the cursor nor the history.
	if session.Current != 1 {
		t.Fatalf("expected cursor to stay at 1, got %d", session.Current)
	}
	if len(session.Visits) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(session.Visits))
	}
}

func TestMoveBeforeFirstNavigation(t *testing.T) {
	nav := New(testSession())

	if _, err := nav.Next(); !errors.Is(err, domain.ErrNoCurrentStep) {
		t.Fatalf("expected ErrNoCurrentStep, got %v", err)
	}
	if _, err := nav.Previous(); !errors.Is(err, domain.ErrNoCurrentStep) {
		t.Fatalf("expected ErrNoCurrentStep, got %v", err)
	}
	if _, err := nav.Current(); !errors.Is(err, domain.ErrNoCurrentStep) {
		t.Fatalf("expected ErrNoCurrentStep, got %v", err)
	}
}

func TestHistoryRecordsRevisits(t *testing.T) {
	nav := New(testSession())

	if _, err := nav.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := nav.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := nav.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}

	history := nav.History()
	want := []int{1, 2, 1}
	if len(history) != len(want) {
		t.Fatalf("expected %d history entries, got %d", len(want), len(history))
	}
	for i, num := range want {
		if history[i].Number != num {
			t.Fatalf("history[%d]: expected step %d, got %d", i, num, history[i].Number)
		}
	}
}

func TestNextPastLastStep(t *testing.T) {
	session := testSession()
	nav := New(session)

	if _, err := nav.JumpTo(3); err != nil {
		t.Fatalf("jump: %v", err)
	}

	if _, err := nav.Next(); !errors.Is(err, domain.ErrInvalidStepIndex) {
		t.Fatalf("expected ErrInvalidStepIndex, got %v", err)
	}
	if session.Current != 3 {
		t.Fatalf("expected cursor to stay at 3, got %d", session.Current)
	}
}

func TestCurrentDoesNotTouchHistory(t *testing.T) {
	session := testSession()
	nav := New(session)

	if _, err := nav.JumpTo(2); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := nav.Current(); err != nil {
		t.Fatalf("current: %v", err)
	}
	if _, err := nav.Current(); err != nil {
		t.Fatalf("current: %v", err)
	}

	if len(session.Visits) != 1 {
		t.Fatalf("expected 1 history entry after repeated reads, got %d", len(session.Visits))
	}
}

package domain

import (
	"context"
	"time"
)

// Fetcher retrieves raw page markup for a URL. The production
// implementation applies a bounded timeout with retries; tests supply
// fixture markup.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Analyzer is the natural-language collaborator: sentence segmentation,
// tokenization, and part-of-speech tagging. A pure function over text,
// swappable for testing.
type Analyzer interface {
	Analyze(text string) (*Analysis, error)
}

// SessionStore persists walkthrough sessions. Implementations can be
// in-memory or backed by any store; the engine receives one by reference
// instead of relying on process-wide globals.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*Session, error)
	// PurgeIdle removes sessions not updated within maxAge and returns
	// how many were dropped.
	PurgeIdle(ctx context.Context, maxAge time.Duration) (int, error)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Assistant answers free-form questions using the recipe and the
// session's navigation state as read-only context. It never owns step
// position — the engine is the sole authority on the current step.
type Assistant interface {
	Ask(ctx context.Context, question string, recipe *Recipe, session *Session) (string, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

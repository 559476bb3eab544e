// Package engine orchestrates the parse pipeline and executes user
// intents against per-session navigation state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mirepoix/souschef/internal/atomize"
	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/enrich"
	"github.com/mirepoix/souschef/internal/extract"
	"github.com/mirepoix/souschef/internal/logger"
	"github.com/mirepoix/souschef/internal/navigate"
	"github.com/mirepoix/souschef/internal/recipe"
)

// Option configures the engine.
type Option func(*Engine)

// WithAssistant wires the conversational-answer collaborator. Without
// one, forwarded questions get the help fallback instead.
func WithAssistant(a domain.Assistant) Option {
	return func(e *Engine) { e.assistant = a }
}

// Engine runs the extraction pipeline and serves navigation and lookup
// commands. It depends only on interfaces and the pipeline stages and is
// fully testable with fakes.
type Engine struct {
	extractor *extract.Extractor
	atomizer  *atomize.Atomizer
	enricher  *enrich.Enricher
	recipes   *recipe.Cache
	store     domain.SessionStore
	assistant domain.Assistant
	log       *logger.Logger
}

// New creates an engine with the given pipeline stages and dependencies.
func New(extractor *extract.Extractor, atomizer *atomize.Atomizer, enricher *enrich.Enricher,
	recipes *recipe.Cache, store domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		extractor: extractor,
		atomizer:  atomizer,
		enricher:  enricher,
		recipes:   recipes,
		store:     store,
		log:       log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse runs the full pipeline for url and binds the result to
// sessionID, replacing any prior session state wholesale. An empty
// sessionID gets a generated one. Re-parsing is idempotent.
func (e *Engine) Parse(ctx context.Context, sessionID, pageURL string) (*domain.Session, error) {
	ingredients, instructions, err := e.extractor.ExtractURL(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	atoms, err := e.atomizer.Atomize(instructions)
	if err != nil {
		return nil, fmt.Errorf("atomizing instructions: %w", err)
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%w: no atomic steps for %s", domain.ErrEmptyExtraction, pageURL)
	}

	steps := make([]domain.Step, 0, len(atoms))
	for i, text := range atoms {
		steps = append(steps, e.enricher.Enrich(i+1, text, ingredients))
	}

	rec := &domain.Recipe{URL: pageURL, Ingredients: ingredients, Steps: steps}
	e.recipes.Put(pageURL, rec)

	session, err := e.bindSession(ctx, sessionID, rec)
	if err != nil {
		return nil, err
	}

	e.log.Info("parsed %s: %d ingredients, %d steps (session=%s)",
		pageURL, len(ingredients), len(steps), session.ID)
	return session, nil
}

// Resume binds a previously parsed recipe to sessionID without
// refetching. Falls back to a full Parse on cache miss.
func (e *Engine) Resume(ctx context.Context, sessionID, pageURL string) (*domain.Session, error) {
	rec, ok := e.recipes.Get(pageURL)
	if !ok {
		return e.Parse(ctx, sessionID, pageURL)
	}
	e.log.Debug("resume: cache hit for %s", pageURL)
	return e.bindSession(ctx, sessionID, rec)
}

// bindSession creates a fresh session around rec and persists it.
func (e *Engine) bindSession(ctx context.Context, sessionID string, rec *domain.Recipe) (*domain.Session, error) {
	if sessionID == "" {
		sessionID = generateID()
	}

	now := time.Now()
	session := &domain.Session{
		ID:          sessionID,
		Recipe:      rec,
		TimerStates: make(map[string]*domain.TimerState),
		Status:      domain.SessionActive,
		StartedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return session, nil
}

// Status reports whether a session has a parsed recipe and its counts.
type Status struct {
	HasRecipe   bool
	URL         string
	Ingredients int
	Steps       int
}

// SessionStatus returns the upward status contract for a session.
func (e *Engine) SessionStatus(ctx context.Context, sessionID string) (*Status, error) {
	session, err := e.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &Status{
		HasRecipe:   true,
		URL:         session.Recipe.URL,
		Ingredients: len(session.Recipe.Ingredients),
		Steps:       len(session.Recipe.Steps),
	}, nil
}

// Response is the engine's answer to one user intent.
type Response struct {
	Text string
	Step *domain.Step
	Done bool // the user asked to exit
}

// HandleIntent executes one routed intent against a session. Navigation
// failures are surfaced per call and never corrupt session state.
func (e *Engine) HandleIntent(ctx context.Context, sessionID string, intent *domain.Intent) (*Response, error) {
	session, err := e.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s (parse a recipe first)", domain.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	nav := navigate.New(session)

	switch intent.Type {
	case domain.IntentQuit:
		session.Status = domain.SessionAbandoned
		session.UpdatedAt = time.Now()
		if err := e.store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		return &Response{Text: "Goodbye!", Done: true}, nil

	case domain.IntentShowIngredients:
		return &Response{Text: formatIngredients(session.Recipe.Ingredients)}, nil

	case domain.IntentShowRecipe:
		return &Response{Text: formatSteps(session.Recipe.Steps)}, nil

	case domain.IntentBegin:
		return e.moveTo(ctx, session, nav, func() (*domain.Step, error) { return nav.JumpTo(1) })

	case domain.IntentNext:
		return e.moveTo(ctx, session, nav, nav.Next)

	case domain.IntentPrevious:
		return e.moveTo(ctx, session, nav, nav.Previous)

	case domain.IntentJump:
		n, convErr := strconv.Atoi(intent.Payload)
		if convErr != nil {
			return nil, fmt.Errorf("%w: %q is not a step number", domain.ErrInvalidStepIndex, intent.Payload)
		}
		return e.moveTo(ctx, session, nav, func() (*domain.Step, error) { return nav.JumpTo(n) })

	case domain.IntentRepeat:
		step, err := nav.Current()
		if err != nil {
			return nil, err
		}
		return &Response{Text: stepLine(step), Step: step}, nil

	case domain.IntentSubstitute:
		return substitutionAnswer(intent.Payload), nil

	case domain.IntentHowMuch:
		return e.quantityAnswer(session, nav, intent)

	case domain.IntentWhatIs:
		return e.referenceAnswer(nav, intent)

	case domain.IntentHowDoI:
		return e.howToAnswer(nav, intent)

	case domain.IntentAskQuestion:
		return e.forwardQuestion(ctx, session, intent.Payload)

	default:
		return &Response{Text: helpText}, nil
	}
}

// moveTo runs one navigation transition and, on success, persists the
// session and arms any timer the reached step carries. On failure the
// session is left exactly as it was.
func (e *Engine) moveTo(ctx context.Context, session *domain.Session, nav *navigate.Navigator,
	transition func() (*domain.Step, error)) (*Response, error) {
	step, err := transition()
	if err != nil {
		return nil, err
	}

	e.armTimer(session, step)
	session.UpdatedAt = time.Now()
	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	text := stepLine(step)
	if step.Number == nav.Len() {
		text += "\nThat's the last step."
	}
	return &Response{Text: text, Step: step}, nil
}

// armTimer starts a running timer for a step with an extracted duration.
// Revisiting a step does not re-arm a timer that already exists.
func (e *Engine) armTimer(session *domain.Session, step *domain.Step) {
	if step.TimerConfig == nil {
		return
	}
	timerID := fmt.Sprintf("timer-step-%d", step.Number)
	if _, exists := session.TimerStates[timerID]; exists {
		return
	}
	session.TimerStates[timerID] = &domain.TimerState{
		ID:         timerID,
		StepNumber: step.Number,
		Label:      step.TimerConfig.Label,
		Duration:   step.TimerConfig.Duration,
		Remaining:  step.TimerConfig.Duration,
		Status:     domain.TimerRunning,
	}
	e.log.Debug("armed timer %s (%s) for step %d", timerID, step.TimerConfig.Duration, step.Number)
}

// ── Lookup answers ───────────────────────────────────────────────

// quantityAnswer handles "how much X" and the vague "how much?" form,
// which resolves against the current step's ingredients.
func (e *Engine) quantityAnswer(session *domain.Session, nav *navigate.Navigator, intent *domain.Intent) (*Response, error) {
	if intent.Vague() {
		step, err := nav.Current()
		if err != nil {
			return nil, err
		}
		if len(step.Ingredients) == 0 {
			return &Response{Text: "I couldn't find any ingredients in this recipe step."}, nil
		}
		var lines []string
		for _, name := range step.Ingredients {
			if ing := findIngredient(session.Recipe.Ingredients, name); ing != nil {
				lines = append(lines, "You need "+quantityPhrase(*ing)+".")
			} else {
				lines = append(lines, "You need some "+name+".")
			}
		}
		return &Response{Text: strings.Join(lines, "\n")}, nil
	}

	ing := findIngredient(session.Recipe.Ingredients, intent.Payload)
	if ing == nil {
		return &Response{Text: "I couldn't find that ingredient in this recipe."}, nil
	}
	return &Response{Text: "You need " + quantityPhrase(*ing) + "."}, nil
}

// referenceAnswer handles "what is X" with a search link; the vague
// "what's that?" form links every ingredient in the current step.
func (e *Engine) referenceAnswer(nav *navigate.Navigator, intent *domain.Intent) (*Response, error) {
	if intent.Vague() {
		step, err := nav.Current()
		if err != nil {
			return nil, err
		}
		if len(step.Ingredients) == 0 {
			return &Response{Text: "I couldn't find any ingredients in this recipe step."}, nil
		}
		var lines []string
		for _, name := range step.Ingredients {
			lines = append(lines, "I found a reference for you: "+googleSearchURL(name))
		}
		return &Response{Text: strings.Join(lines, "\n")}, nil
	}
	return &Response{Text: "I found a reference for you: " + googleSearchURL(intent.Payload)}, nil
}

// howToAnswer handles "how do I X" with a video search link; the vague
// form resolves against the current step's methods.
func (e *Engine) howToAnswer(nav *navigate.Navigator, intent *domain.Intent) (*Response, error) {
	if intent.Vague() {
		step, err := nav.Current()
		if err != nil {
			return nil, err
		}
		if len(step.Methods) == 0 {
			return &Response{Text: "I couldn't find any methods in this recipe step."}, nil
		}
		var lines []string
		for _, method := range step.Methods {
			lines = append(lines, "Here's a video search that might help: "+youtubeSearchURL("how to "+method))
		}
		return &Response{Text: strings.Join(lines, "\n")}, nil
	}
	return &Response{Text: "Here's a video search that might help: " + youtubeSearchURL("how to "+intent.Payload)}, nil
}

// substitutionAnswer links a search for replacements of an ingredient.
func substitutionAnswer(ingredient string) *Response {
	if ingredient == "" {
		return &Response{Text: "Which ingredient do you want a substitute for?"}
	}
	return &Response{
		Text: fmt.Sprintf("Here are some substitution options for %q:\n%s",
			ingredient, googleSearchURL(ingredient+" cooking substitute")),
	}
}

// forwardQuestion sends the query to the assistant with full recipe and
// navigation context. With no assistant configured the router's fallback
// is the help text — a deliberate answer, not an error.
func (e *Engine) forwardQuestion(ctx context.Context, session *domain.Session, question string) (*Response, error) {
	if e.assistant == nil {
		return &Response{Text: "Sorry, I didn't understand that.\n" + helpText}, nil
	}
	answer, err := e.assistant.Ask(ctx, question, session.Recipe, session)
	if err != nil {
		e.log.Error("assistant: %v", err)
		return &Response{Text: "Sorry, I couldn't get an answer for that right now."}, nil
	}
	return &Response{Text: answer}, nil
}

// ── Formatting helpers ───────────────────────────────────────────

const helpText = `I can:
- show ingredients
- show the full recipe
- start the walkthrough (start)
- show step <number>, next, back, repeat
- answer "how much <ingredient> do I need?"
- answer "what is X?" and "how do I X?" with helpful links`

func stepLine(step *domain.Step) string {
	return fmt.Sprintf("Step %d: %s", step.Number, step.Description)
}

func formatIngredients(ingredients []domain.Ingredient) string {
	var b strings.Builder
	b.WriteString("Here are the ingredients:")
	for _, ing := range ingredients {
		b.WriteString("\n- " + ing.String())
	}
	return b.String()
}

func formatSteps(steps []domain.Step) string {
	var b strings.Builder
	b.WriteString("Here are all the steps:")
	for i := range steps {
		b.WriteString("\n" + stepLine(&steps[i]))
	}
	return b.String()
}

// findIngredient matches by case-insensitive bidirectional substring, the
// same rule the enricher uses to annotate steps.
func findIngredient(ingredients []domain.Ingredient, name string) *domain.Ingredient {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for i := range ingredients {
		have := strings.ToLower(ingredients[i].Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return &ingredients[i]
		}
	}
	return nil
}

// quantityPhrase renders "2 cups of flour" style answers.
func quantityPhrase(ing domain.Ingredient) string {
	parts := make([]string, 0, 3)
	if ing.Quantity != "" {
		parts = append(parts, ing.Quantity)
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	if len(parts) == 0 {
		return "some " + ing.Name
	}
	parts = append(parts, "of "+ing.Name)
	return strings.Join(parts, " ")
}

func googleSearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func youtubeSearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

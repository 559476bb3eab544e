package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.Assistant = (*Agent)(nil)

// Agent wraps the chat Client with recipe-context building. The context
// it sends is strictly read-only: the model sees the recipe, the current
// step, and the visit history, but navigation state is owned by the
// engine alone.
type Agent struct {
	client *Client
	log    *logger.Logger
}

// NewAgent creates an assistant backed by the given Client.
func NewAgent(client *Client, log *logger.Logger) *Agent {
	return &Agent{client: client, log: log}
}

// Ask sends a free-form question to the model together with the recipe
// and navigation context and returns the assistant's answer.
func (a *Agent) Ask(ctx context.Context, question string, recipe *domain.Recipe, session *domain.Session) (string, error) {
	msgs := []Message{
		{Role: RoleSystem, Content: PromptQuestion},
	}

	if ctxBlock := buildContext(recipe, session); ctxBlock != "" {
		msgs = append(msgs, Message{Role: RoleUser, Content: ctxBlock})
		// Fake an ack so the model treats context as established.
		msgs = append(msgs, Message{Role: RoleAssistant, Content: "Got it, I have the recipe context."})
	}

	msgs = append(msgs, Message{Role: RoleUser, Content: question})
	return a.client.Chat(ctx, msgs)
}

// buildContext serializes the recipe payload and the session's navigation
// state into a plain-text block the model can reason over.
func buildContext(recipe *domain.Recipe, session *domain.Session) string {
	if recipe == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("FULL RECIPE DATA:\n")

	// The payload is the full parsed recipe, structured, so the model can
	// answer quantity and step questions without guessing.
	data, err := json.MarshalIndent(recipePayload(recipe), "", "  ")
	if err == nil {
		b.Write(data)
		b.WriteString("\n")
	}

	if session == nil {
		b.WriteString("\nNo walkthrough in progress.\n")
		return b.String()
	}

	b.WriteString("\n[Navigation Context]\n")
	if session.Current >= 1 && session.Current <= len(recipe.Steps) {
		cur := recipe.Steps[session.Current-1]
		fmt.Fprintf(&b, "Current step: Step %d: %s\n", cur.Number, cur.Description)
	} else {
		b.WriteString("Current step: none selected yet.\n")
	}

	b.WriteString("\nSteps visited so far, in order (revisits listed every time):\n")
	if len(session.Visits) == 0 {
		b.WriteString("(none)\n")
	}
	for i, v := range session.Visits {
		fmt.Fprintf(&b, "%d. Step %d: %s\n", i+1, v.Number, v.Text)
	}

	return b.String()
}

// recipePayload shapes a recipe for JSON embedding.
func recipePayload(r *domain.Recipe) map[string]any {
	ingredients := make([]map[string]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, map[string]string{
			"name":             ing.Name,
			"quantity":         ing.Quantity,
			"measurement_unit": ing.Unit,
		})
	}

	steps := make([]map[string]any, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, map[string]any{
			"step_number": s.Number,
			"description": s.Description,
			"ingredients": s.Ingredients,
			"tools":       s.Tools,
			"methods":     s.Methods,
			"time":        s.Time,
			"temperature": s.Temperature,
		})
	}

	return map[string]any{
		"url":         r.URL,
		"ingredients": ingredients,
		"steps":       steps,
	}
}

// Package domain defines the core types and interfaces for the recipe
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"strings"
	"time"
)

// Ingredient is a single recipe ingredient as extracted from the page.
// Quantity and Unit may be empty for unquantified items ("salt to taste").
type Ingredient struct {
	Name     string
	Quantity string
	Unit     string
}

// String renders the ingredient as "quantity unit name", omitting absent parts.
func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	if i.Quantity != "" {
		parts = append(parts, i.Quantity)
	}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	if i.Name != "" {
		parts = append(parts, i.Name)
	}
	return strings.Join(parts, " ")
}

// StepTypeObservation is the default classification for atomic steps.
const StepTypeObservation = "observation"

// Step is one atomic cooking step: a single action, annotated with the
// ingredients, tools, methods, duration, and temperature it references.
// Steps are numbered 1..N after atomization; original instruction
// boundaries are not preserved. A Step is never mutated after creation.
type Step struct {
	Number      int
	Description string
	Ingredients []string // referenced ingredient names, may be empty
	Tools       []string // equipment vocabulary matches, de-duplicated
	Methods     []string // cooking-action vocabulary matches, de-duplicated
	Time        string   // e.g. "about 5 minutes", empty if absent
	Temperature string   // e.g. "350°F" or "medium heat", empty if absent
	Type        string   // classification, defaults to StepTypeObservation
	TimerConfig *TimerConfig
}

// TimerConfig is an optional timer attached to a step whose extracted
// duration parsed cleanly.
type TimerConfig struct {
	Duration time.Duration
	Label    string
}

// Recipe is one parsed recipe: ordered ingredients, ordered atomic steps,
// and the URL it came from. Owned by a session; replaced wholesale on
// re-parse.
type Recipe struct {
	URL         string
	Ingredients []Ingredient
	Steps       []Step
}

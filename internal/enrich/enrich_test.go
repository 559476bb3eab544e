package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// fakeAnalyzer tokenizes on whitespace and tags tokens from a fixed verb
// set, defaulting to NN. This keeps the method-matching tests independent
// of the statistical tagger.
type fakeAnalyzer struct {
	verbs map[string]bool
}

func (f *fakeAnalyzer) Analyze(text string) (*domain.Analysis, error) {
	var tokens []domain.Token
	for _, field := range strings.Fields(text) {
		word := strings.TrimRight(field, ",.;:!?")
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		tag := "NN"
		if f.verbs[lower] {
			tag = "VB"
		}
		tokens = append(tokens, domain.Token{Text: word, Lemma: lower, Tag: tag})
	}
	return &domain.Analysis{
		Sentences: []domain.Sentence{{Text: text, Tokens: tokens}},
	}, nil
}

func newTestEnricher(verbs ...string) *Enricher {
	set := make(map[string]bool, len(verbs))
	for _, v := range verbs {
		set[v] = true
	}
	return New(&fakeAnalyzer{verbs: set}, logger.New(logger.LevelOff, nil))
}

func TestEnrichIngredients(t *testing.T) {
	e := newTestEnricher("mix")
	known := []domain.Ingredient{
		{Name: "all-purpose flour", Quantity: "2", Unit: "cups"},
		{Name: "eggs", Quantity: "3"},
		{Name: "butter", Quantity: "1", Unit: "stick"},
	}

	step := e.Enrich(1, "Mix the flour and eggs in a mixing bowl.", known)

	// "flour" matches by containment in "all-purpose flour"; butter
	// appears nowhere in the step.
	want := []string{"all-purpose flour", "eggs"}
	if len(step.Ingredients) != len(want) {
		t.Fatalf("expected ingredients %v, got %v", want, step.Ingredients)
	}
	for i := range want {
		if step.Ingredients[i] != want[i] {
			t.Fatalf("expected ingredients %v, got %v", want, step.Ingredients)
		}
	}
}

func TestEnrichIngredientsReverseContainment(t *testing.T) {
	e := newTestEnricher()
	known := []domain.Ingredient{
		{Name: "chopped fresh basil leaves", Quantity: "2", Unit: "tbsp"},
	}

	// Fragmentary steps happen; the containment test runs both ways, so a
	// step shorter than the ingredient name still matches.
	step := e.Enrich(1, "Fresh basil", known)

	if len(step.Ingredients) != 1 || step.Ingredients[0] != "chopped fresh basil leaves" {
		t.Fatalf("expected reverse containment match, got %v", step.Ingredients)
	}
}

func TestEnrichToolsLongestFirst(t *testing.T) {
	e := newTestEnricher("whisk")

	step := e.Enrich(1, "Whisk everything together in a mixing bowl.", nil)

	// "mixing bowl" wins; plain "bowl" is suppressed. "whisk" here is a
	// verb, but the tool vocabulary matches it by substring too — the
	// annotation is a mention list, not a parse.
	want := []string{"mixing bowl", "whisk"}
	if len(step.Tools) != len(want) {
		t.Fatalf("expected tools %v, got %v", want, step.Tools)
	}
	for i := range want {
		if step.Tools[i] != want[i] {
			t.Fatalf("expected tools %v, got %v", want, step.Tools)
		}
	}
}

func TestEnrichMethodsUnionsTaggerAndRegex(t *testing.T) {
	// The fake tagger only knows "whisk" as a verb, so "fold" must come
	// in through the word-boundary regex pass.
	e := newTestEnricher("whisk")

	step := e.Enrich(1, "Whisk the eggs, fold in the flour.", nil)

	want := []string{"fold", "whisk"}
	if len(step.Methods) != len(want) {
		t.Fatalf("expected methods %v, got %v", want, step.Methods)
	}
	for i := range want {
		if step.Methods[i] != want[i] {
			t.Fatalf("expected methods %v, got %v", want, step.Methods)
		}
	}
}

func TestEnrichMethodsWordBoundary(t *testing.T) {
	e := newTestEnricher()

	// "folder" must not match "fold"; "layered" must not match "layer".
	step := e.Enrich(1, "Place the folder of layered parchment aside.", nil)

	if len(step.Methods) != 0 {
		t.Fatalf("expected no methods, got %v", step.Methods)
	}
}

func TestEnrichTimerConfig(t *testing.T) {
	e := newTestEnricher("simmer")

	step := e.Enrich(3, "Simmer the sauce gently for about 10 minutes.", nil)

	if step.Time != "about 10 minutes" {
		t.Fatalf("expected time %q, got %q", "about 10 minutes", step.Time)
	}
	if step.TimerConfig == nil {
		t.Fatal("expected a timer config for a step with a duration")
	}
	if step.TimerConfig.Duration != 10*time.Minute {
		t.Fatalf("expected 10m duration, got %v", step.TimerConfig.Duration)
	}
	if step.TimerConfig.Label != "simmer about 10 minutes" {
		t.Fatalf("unexpected timer label %q", step.TimerConfig.Label)
	}
}

func TestEnrichNoTimerWithoutDuration(t *testing.T) {
	e := newTestEnricher("season")

	step := e.Enrich(2, "Season with salt and pepper.", nil)

	if step.TimerConfig != nil {
		t.Fatalf("expected no timer config, got %+v", step.TimerConfig)
	}
	if step.Time != "" {
		t.Fatalf("expected no time, got %q", step.Time)
	}
}

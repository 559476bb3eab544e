// Package enrich annotates atomic steps with the ingredients, tools,
// methods, duration, and temperature they reference. Extraction is pure
// and deterministic given the vocabularies and the step text.
package enrich

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Enricher annotates step text against the fixed vocabularies.
type Enricher struct {
	nl  domain.Analyzer
	log *logger.Logger
}

// New creates an enricher over the given NL collaborator.
func New(nl domain.Analyzer, log *logger.Logger) *Enricher {
	return &Enricher{nl: nl, log: log}
}

// Enrich builds the annotated step for one atomic step text.
func (e *Enricher) Enrich(number int, text string, known []domain.Ingredient) domain.Step {
	lower := strings.ToLower(text)

	step := domain.Step{
		Number:      number,
		Description: text,
		Type:        domain.StepTypeObservation,
		Ingredients: matchIngredients(lower, known),
		Tools:       matchTools(lower),
		Methods:     e.matchMethods(text, lower),
		Time:        extractTime(lower),
		Temperature: extractTemperature(lower),
	}

	if d := parseDuration(step.Time); d > 0 {
		step.TimerConfig = &domain.TimerConfig{
			Duration: d,
			Label:    timerLabel(step),
		}
	}
	return step
}

// matchIngredients records every known ingredient the step text mentions,
// case-insensitively. Containment runs both ways, so a step saying "olive"
// still matches the ingredient "olive oil"; qualified names
// ("all-purpose flour") also match on their head noun, since steps
// usually drop the qualifier.
func matchIngredients(lower string, known []domain.Ingredient) []string {
	var out []string
	for _, ing := range known {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" {
			continue
		}
		if strings.Contains(lower, name) || strings.Contains(name, lower) || containsWord(lower, headNoun(name)) {
			out = append(out, ing.Name)
		}
	}
	return out
}

// headNoun returns the last word of a multi-word ingredient name.
func headNoun(name string) string {
	fields := strings.Fields(name)
	return fields[len(fields)-1]
}

// containsWord reports whether text contains word as a whole token,
// ignoring surrounding punctuation.
func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ",.;:!?()'\"") == word {
			return true
		}
	}
	return false
}

// toolsByLength is the tool vocabulary sorted longest-first so multi-word
// tools match before their single-word suffixes.
var toolsByLength = func() []string {
	sorted := make([]string, len(tools))
	copy(sorted, tools)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return sorted
}()

// matchTools finds equipment references by substring. Once an entry
// matches, its text is blanked out of the working copy so shorter entries
// contained in it ("bowl" inside "mixing bowl") are suppressed.
func matchTools(lower string) []string {
	var out []string
	working := lower
	for _, tool := range toolsByLength {
		if !strings.Contains(working, tool) {
			continue
		}
		out = append(out, tool)
		working = strings.ReplaceAll(working, tool, strings.Repeat("·", len(tool)))
	}
	sort.Strings(out)
	return out
}

var methodRegexps = struct {
	once sync.Once
	res  map[string]*regexp.Regexp
}{}

// methodRe returns the word-boundary pattern for a vocabulary entry,
// compiled once.
func methodRe(entry string) *regexp.Regexp {
	methodRegexps.once.Do(func() {
		methodRegexps.res = make(map[string]*regexp.Regexp, len(methods))
		for _, m := range methods {
			methodRegexps.res[m] = regexp.MustCompile(`\b` + regexp.QuoteMeta(m) + `\b`)
		}
	})
	return methodRegexps.res[entry]
}

// matchMethods unions two passes: verb-token lemmas tested against the
// vocabulary, and a word-boundary regex search over the raw lower-cased
// text that catches verbs the tagger mis-tagged.
func (e *Enricher) matchMethods(text, lower string) []string {
	seen := make(map[string]bool)

	analysis, err := e.nl.Analyze(text)
	if err != nil {
		e.log.Warn("enrich: analyzing %q: %v", text, err)
	} else {
		vocab := make(map[string]bool, len(methods))
		for _, m := range methods {
			vocab[m] = true
		}
		for _, sentence := range analysis.Sentences {
			for _, tok := range sentence.Tokens {
				if tok.IsVerb() && vocab[tok.Lemma] {
					seen[tok.Lemma] = true
				}
			}
		}
	}

	for _, m := range methods {
		if !seen[m] && methodRe(m).MatchString(lower) {
			seen[m] = true
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// timerLabel names a step's timer after its first method, falling back to
// a generic label.
func timerLabel(step domain.Step) string {
	if len(step.Methods) > 0 {
		return step.Methods[0] + " " + step.Time
	}
	return "step timer " + step.Time
}

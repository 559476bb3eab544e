// Package atomize splits compound recipe instructions into single-action
// atomic steps.
//
// The split is structural, not semantic: a sentence is only divided at a
// boundary conjunction that has at least one verb strictly on each side.
// That keys the split on verb adjacency, so "Preheat the oven, then mix
// the batter" becomes two steps while "season with salt and pepper" stays
// whole — no verb flanks the "and".
package atomize

import (
	"fmt"
	"strings"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// boundaryConjunctions are the tokens a sentence may be split at.
var boundaryConjunctions = map[string]bool{
	"then": true,
	"and":  true,
}

// Atomizer renumbers and splits raw instructions into atomic steps.
type Atomizer struct {
	nl  domain.Analyzer
	log *logger.Logger
}

// New creates an atomizer over the given NL collaborator.
func New(nl domain.Analyzer, log *logger.Logger) *Atomizer {
	return &Atomizer{nl: nl, log: log}
}

// Atomize flattens raw instructions into an ordered list of atomic step
// texts. Steps keep source order across instructions; callers renumber
// them 1..N. Atomization is idempotent on already-atomic sentences.
func (a *Atomizer) Atomize(raw []string) ([]string, error) {
	var steps []string
	for _, instruction := range raw {
		analysis, err := a.nl.Analyze(instruction)
		if err != nil {
			return nil, fmt.Errorf("analyzing instruction: %w", err)
		}
		for _, sentence := range analysis.Sentences {
			steps = append(steps, splitSentence(sentence)...)
		}
	}
	a.log.Debug("atomize: %d instructions -> %d steps", len(raw), len(steps))
	return steps, nil
}

// splitSentence divides one sentence at its first qualifying boundary
// conjunction. A sentence splits at most once: three verbs with two valid
// boundaries still yield exactly two pieces.
func splitSentence(s domain.Sentence) []string {
	verbs := 0
	for _, tok := range s.Tokens {
		if tok.IsVerb() {
			verbs++
		}
	}
	if verbs < 2 {
		return []string{strings.TrimSpace(s.Text)}
	}

	for i, tok := range s.Tokens {
		if !boundaryConjunctions[strings.ToLower(tok.Text)] {
			continue
		}
		if !hasVerb(s.Tokens[:i]) || !hasVerb(s.Tokens[i+1:]) {
			continue
		}
		left := strings.TrimRight(detokenize(s.Tokens[:i]), ",; ")
		right := detokenize(s.Tokens[i+1:])
		if left == "" || right == "" {
			continue
		}
		return []string{left, right}
	}

	// Multiple verbs but no qualifying boundary: leave the sentence whole.
	return []string{strings.TrimSpace(s.Text)}
}

// hasVerb reports whether any token in the slice is a verb.
func hasVerb(tokens []domain.Token) bool {
	for _, tok := range tokens {
		if tok.IsVerb() {
			return true
		}
	}
	return false
}

// detokenize rebuilds readable text from a token span. Punctuation
// attaches to the preceding token; everything else is space-joined.
func detokenize(tokens []domain.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !isPunct(tok.Text) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return strings.TrimSpace(b.String())
}

// isPunct reports whether a token is trailing punctuation.
func isPunct(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsAny(s[:1], ",.;:!?)'’%") && len(s) <= 2
}

// Package nlp implements the natural-language collaborator on top of the
// prose tokenizer and part-of-speech tagger.
//
// Recipe prose is imperative, and statistical taggers trained on news
// text routinely mis-tag a leading verb ("Preheat", "Whisk") as a noun.
// The analyzer therefore accepts a set of verb hints — the cooking verb
// vocabulary — and promotes any token whose lemma appears in it.
package nlp

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.Analyzer = (*ProseAnalyzer)(nil)

// Option configures the analyzer.
type Option func(*ProseAnalyzer)

// WithVerbHints registers lemmas that are always treated as verbs,
// regardless of how the tagger labels them.
func WithVerbHints(lemmas ...string) Option {
	return func(a *ProseAnalyzer) {
		for _, l := range lemmas {
			a.verbHints[strings.ToLower(l)] = struct{}{}
		}
	}
}

// ProseAnalyzer segments, tokenizes, and tags text.
type ProseAnalyzer struct {
	log       *logger.Logger
	verbHints map[string]struct{}
}

// New creates a prose-backed analyzer.
func New(log *logger.Logger, opts ...Option) *ProseAnalyzer {
	a := &ProseAnalyzer{
		log:       log,
		verbHints: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze segments text into sentences and tags each sentence's tokens.
// Pure and deterministic for a given input.
func (a *ProseAnalyzer) Analyze(text string) (*domain.Analysis, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segmenting text: %w", err)
	}

	analysis := &domain.Analysis{}
	for _, sent := range doc.Sentences() {
		sentence, err := a.analyzeSentence(sent.Text)
		if err != nil {
			return nil, err
		}
		analysis.Sentences = append(analysis.Sentences, sentence)
	}
	return analysis, nil
}

// analyzeSentence tags one already-segmented sentence.
func (a *ProseAnalyzer) analyzeSentence(text string) (domain.Sentence, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return domain.Sentence{}, fmt.Errorf("tagging sentence: %w", err)
	}

	sentence := domain.Sentence{Text: strings.TrimSpace(text)}
	for _, tok := range doc.Tokens() {
		lemma := a.Lemma(tok.Text)
		tag := tok.Tag
		if _, hinted := a.verbHints[lemma]; hinted && !strings.HasPrefix(tag, "VB") {
			tag = "VB"
		}
		sentence.Tokens = append(sentence.Tokens, domain.Token{
			Text:  tok.Text,
			Lemma: lemma,
			Tag:   tag,
		})
	}
	return sentence, nil
}

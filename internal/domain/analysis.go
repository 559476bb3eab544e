package domain

import "strings"

// Token is one token of analyzed text. Tag is a Penn Treebank
// part-of-speech tag; Lemma is the lower-cased dictionary form.
type Token struct {
	Text  string
	Lemma string
	Tag   string
}

// IsVerb reports whether the token was tagged as any verb form.
func (t Token) IsVerb() bool {
	return strings.HasPrefix(t.Tag, "VB")
}

// Sentence is one segmented sentence with its ordered tokens.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Analysis is the result of running text through the NL collaborator.
type Analysis struct {
	Sentences []Sentence
}

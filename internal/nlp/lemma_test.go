package nlp

import (
	"testing"

	"github.com/mirepoix/souschef/internal/logger"
)

func TestLemma(t *testing.T) {
	a := New(logger.New(logger.LevelOff, nil),
		WithVerbHints("bake", "slice", "dice", "saute", "grate", "whisk", "simmer"),
	)

	tests := []struct {
		word string
		want string
	}{
		// Suffix rules.
		{"stirred", "stir"},
		{"stirring", "stir"},
		{"mixing", "mix"},
		{"mixes", "mix"},
		{"mashes", "mash"},
		{"whisked", "whisk"},
		{"simmering", "simmer"},
		{"boils", "boil"},
		{"slices", "slice"},

		// Doubled-consonant undoubling.
		{"chopped", "chop"},
		{"chopping", "chop"},

		// Silent-e restoration via verb hints.
		{"baking", "bake"},
		{"baked", "bake"},
		{"sliced", "slice"},
		{"grated", "grate"},
		{"dicing", "dice"},

		// Irregulars.
		{"fried", "fry"},
		{"made", "make"},
		{"cut", "cut"},
		{"set", "set"},
		{"putting", "put"},

		// Already base forms pass through.
		{"mix", "mix"},
		{"bake", "bake"},
		{"toss", "toss"},

		// Case-insensitive.
		{"Whisked", "whisk"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := a.Lemma(tt.word); got != tt.want {
				t.Fatalf("Lemma(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

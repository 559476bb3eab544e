package nlp

import "strings"

// irregular maps inflected forms that the suffix rules get wrong.
var irregular = map[string]string{
	"is":      "be",
	"are":     "be",
	"was":     "be",
	"has":     "have",
	"had":     "have",
	"made":    "make",
	"making":  "make",
	"let":     "let",
	"set":     "set",
	"setting": "set",
	"cut":     "cut",
	"cutting": "cut",
	"put":     "put",
	"putting": "put",
	"left":    "leave",
	"leaves":  "leave",
	"done":    "do",
	"lying":   "lie",
	"dying":   "die",
	"frying":  "fry",
	"fried":   "fry",
	"fries":   "fry",
	"dried":   "dry",
	"drying":  "dry",
	"dries":   "dry",
}

// Lemma reduces an English verb form to its dictionary form using suffix
// rules. It is intentionally small: its only job is normalizing recipe
// verbs well enough to hit the method vocabulary, not general-purpose
// morphology.
func (a *ProseAnalyzer) Lemma(word string) string {
	w := strings.ToLower(word)
	if base, ok := irregular[w]; ok {
		return base
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return a.restore(w[:len(w)-3])
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return a.restore(w[:len(w)-2])
	case strings.HasSuffix(w, "es") && len(w) > 4 && esTakers(w):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && len(w) > 3 && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	}
	return w
}

// restore fixes stems mangled by suffix stripping: "stirr" -> "stir",
// "bak" -> "bake". The e-restoration only fires when the restored form is
// a known verb hint, keeping the rule from inventing words.
func (a *ProseAnalyzer) restore(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !strings.ContainsRune("lse", rune(stem[n-1])) {
		return stem[:n-1]
	}
	if _, ok := a.verbHints[stem+"e"]; ok {
		return stem + "e"
	}
	return stem
}

// esTakers reports whether a word ending in "es" drops both letters
// ("mixes", "mashes", "slices") rather than one ("bakes").
func esTakers(w string) bool {
	for _, suffix := range []string{"ches", "shes", "sses", "xes", "zes"} {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}

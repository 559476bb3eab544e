// Package conversation provides intent routing and user notification.
//
// The router is an ordered list of (pattern, intent) rules evaluated
// first-match-wins. Priority is the literal slice order — a first-class,
// testable artifact rather than emergent control flow.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*Router)(nil)

// rule is one pattern in the routing order. When capture is true the
// last non-empty submatch becomes the intent payload.
type rule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	capture bool
}

// Router matches user queries to intents using ordered regex rules.
type Router struct {
	log   *logger.Logger
	rules []rule
}

// NewRouter creates the intent router with its fixed rule order.
func NewRouter(log *logger.Logger) *Router {
	r := &Router{log: log}
	r.rules = []rule{
		{regex: regexp.MustCompile(`(?i)^(quit|exit|q)$`), intent: domain.IntentQuit},
		{regex: regexp.MustCompile(`(?i)^((show|list)\s+(me\s+the\s+)?ingredients|ingredients)$`), intent: domain.IntentShowIngredients},
		{regex: regexp.MustCompile(`(?i)(show\s+(me\s+)?(the\s+)?recipe|show\s+all\s+steps|display\s+the\s+recipe|full\s+recipe)`), intent: domain.IntentShowRecipe},
		{regex: regexp.MustCompile(`(?i)^(start( the)?( recipe| cooking)?|begin( the)?( recipe)?|walkthrough|start recipe walkthrough)$`), intent: domain.IntentBegin},
		{regex: regexp.MustCompile(`(?i)^(next( step)?|n|advance|continue|what'?s next)$`), intent: domain.IntentNext},
		{regex: regexp.MustCompile(`(?i)^(previous( step)?|last step|go back( (a|one) step)?|b|back)$`), intent: domain.IntentPrevious},
		{regex: regexp.MustCompile(`(?i)\bstep\s+(\d+)\b`), intent: domain.IntentJump, capture: true},
		{regex: regexp.MustCompile(`(?i)^(repeat( that)?|say that again|what was that|again)$`), intent: domain.IntentRepeat},
		{regex: regexp.MustCompile(`(?i)(?:substitute for|what can i use instead of|what can i substitute for)\s+(.+)`), intent: domain.IntentSubstitute, capture: true},

		// Vague quantity lookup — no subject; resolved against the
		// current step. Must sort before the specific form.
		{regex: regexp.MustCompile(`(?i)^how (?:much|many)(?:\s+of\s+(?:that|this|it|those|these))?(?:\s+(?:do i need|is needed|are needed))?\s*\??$`), intent: domain.IntentHowMuch},
		{regex: regexp.MustCompile(`(?i)^how much (.+?)(?:\s+(?:do (?:i|we)|is|are)\s+need(?:ed)?)?\s*[?.!]*$`), intent: domain.IntentHowMuch, capture: true},

		{regex: regexp.MustCompile(`(?i)^what(?:'s| is) (?:that|this)\s*\??$`), intent: domain.IntentWhatIs},
		{regex: regexp.MustCompile(`(?i)^what(?:'s| is) (.+?)\s*[?.!]*$`), intent: domain.IntentWhatIs, capture: true},

		{regex: regexp.MustCompile(`(?i)^(?:how\??|how do i do (?:that|this|it)\s*\??)$`), intent: domain.IntentHowDoI},
		{regex: regexp.MustCompile(`(?i)^how do (?:i|you|we) (.+?)\s*[?.!]*$`), intent: domain.IntentHowDoI, capture: true},
	}
	return r
}

// Parse routes a query to an intent. The final fallback is
// IntentAskQuestion carrying the raw input — never an error.
func (r *Router) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	r.log.Debug("routing input: %q", trimmed)

	for _, rule := range r.rules {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		intent := &domain.Intent{Type: rule.intent}
		if rule.capture {
			intent.Payload = lastNonEmpty(m[1:])
		}
		r.log.Debug("matched intent: %s (payload=%q)", intent.Type, intent.Payload)
		return intent, nil
	}

	r.log.Debug("no rule matched, forwarding as question")
	return &domain.Intent{Type: domain.IntentAskQuestion, Payload: trimmed}, nil
}

// lastNonEmpty returns the last non-empty capture group, cleaned of
// trailing punctuation.
func lastNonEmpty(groups []string) string {
	for i := len(groups) - 1; i >= 0; i-- {
		if g := strings.TrimSpace(groups[i]); g != "" {
			return strings.TrimRight(g, "?.,! ")
		}
	}
	return ""
}

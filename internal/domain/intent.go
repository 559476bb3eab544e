package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentQuit
	IntentShowIngredients
	IntentShowRecipe
	IntentBegin
	IntentNext
	IntentPrevious
	IntentJump
	IntentRepeat
	IntentSubstitute
	IntentHowMuch
	IntentWhatIs
	IntentHowDoI
	IntentAskQuestion // free-form question forwarded to the assistant
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentQuit:
		return "quit"
	case IntentShowIngredients:
		return "show_ingredients"
	case IntentShowRecipe:
		return "show_recipe"
	case IntentBegin:
		return "begin"
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentJump:
		return "jump"
	case IntentRepeat:
		return "repeat"
	case IntentSubstitute:
		return "substitute"
	case IntentHowMuch:
		return "how_much"
	case IntentWhatIs:
		return "what_is"
	case IntentHowDoI:
		return "how_do_i"
	case IntentAskQuestion:
		return "ask_question"
	default:
		return "unknown"
	}
}

// Intent is a parsed user action. Payload carries the captured subject
// (ingredient name, step number, search term). For the lookup intents an
// empty Payload marks the vague form ("how much?", "what's that?") that
// resolves against the navigator's current step instead of a named
// subject.
type Intent struct {
	Type    IntentType
	Payload string
}

// Vague reports whether a lookup intent carries no explicit subject.
func (i *Intent) Vague() bool {
	return i.Payload == ""
}

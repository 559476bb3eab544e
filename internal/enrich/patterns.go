package enrich

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time and temperature are extracted with ordered pattern chains:
// the first pattern that matches wins, and absence of all yields the
// empty string.

const timeUnits = `hours?|hrs?|minutes?|mins?|seconds?|secs?`

var (
	// "about 5 minutes", "approximately 2-3 hours"
	qualifiedTimeRe = regexp.MustCompile(`\b(about|approximately|around)\s+(\d+(?:-\d+)?)\s*(` + timeUnits + `)\b`)
	// "45 minutes", "1 hour"
	plainTimeRe = regexp.MustCompile(`\b(\d+(?:-\d+)?)\s*(` + timeUnits + `)\b`)

	// "350°F", "350 degrees f", "180 c"
	numericTempRe = regexp.MustCompile(`\b(\d{2,3})\s*(?:°|degrees?)?\s*([fc])\b`)
	// "medium-high heat", "low"
	heatLevelRe = regexp.MustCompile(`\b(medium-low|medium-high|low|medium|high)(\s+heat)?\b`)

	leadingNumberRe = regexp.MustCompile(`^\d+`)
)

// extractTime returns the step's duration descriptor, trying the
// qualified pattern before the plain one.
func extractTime(lower string) string {
	if m := qualifiedTimeRe.FindStringSubmatch(lower); m != nil {
		return m[1] + " " + m[2] + " " + m[3]
	}
	if m := plainTimeRe.FindStringSubmatch(lower); m != nil {
		return m[1] + " " + m[2]
	}
	return ""
}

// extractTemperature returns the step's temperature, trying the numeric
// pattern before the heat-level phrase. The unit letter is upper-cased.
func extractTemperature(lower string) string {
	if m := numericTempRe.FindStringSubmatch(lower); m != nil {
		return m[1] + "°" + strings.ToUpper(m[2])
	}
	if m := heatLevelRe.FindStringSubmatch(lower); m != nil {
		return m[1] + m[2]
	}
	return ""
}

// parseDuration converts an extracted time descriptor into a concrete
// duration for timers. Ranges ("2-3 minutes") use the first magnitude.
// Returns 0 when the descriptor is empty or unparseable.
func parseDuration(descriptor string) time.Duration {
	m := plainTimeRe.FindStringSubmatch(strings.ToLower(descriptor))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(leadingNumberRe.FindString(m[1]))
	if err != nil || n <= 0 {
		return 0
	}

	switch {
	case strings.HasPrefix(m[2], "h"):
		return time.Duration(n) * time.Hour
	case strings.HasPrefix(m[2], "m"):
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * time.Second
	}
}

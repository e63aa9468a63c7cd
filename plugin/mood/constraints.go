package mood

import "strings"

// Constraint labels reported by MissingConstraints, in the order they are
// presented to the user.
const (
	ConstraintCity    = "city"
	ConstraintTime    = "time available"
	ConstraintWeather = "weather preference"
	ConstraintCrowd   = "crowd tolerance"
	ConstraintBudget  = "budget"
)

// MissingConstraints returns the subset of trip constraints not detectable in
// the message. Budget additionally accepts currency amount patterns such as
// "$20" and "under $20".
func MissingConstraints(message string) []string {
	text := strings.ToLower(message)

	hasWeather := containsAny(text, weatherTerms)
	hasCrowd := containsAny(text, crowdTerms)
	hasBudget := containsAny(text, budgetTerms) ||
		currencyAmountPattern.MatchString(text) ||
		budgetBoundPattern.MatchString(text)

	missing := []string{}
	if ExtractCity(message) == "" {
		missing = append(missing, ConstraintCity)
	}
	if ExtractDuration(message) == "" {
		missing = append(missing, ConstraintTime)
	}
	if !hasWeather {
		missing = append(missing, ConstraintWeather)
	}
	if !hasCrowd {
		missing = append(missing, ConstraintCrowd)
	}
	if !hasBudget {
		missing = append(missing, ConstraintBudget)
	}
	return missing
}

// IsLikelyRouteIntent reports whether the message looks like a request for a
// city walk rather than general chat.
func IsLikelyRouteIntent(message string) bool {
	if ExtractCity(message) != "" || ExtractDuration(message) != "" {
		return true
	}
	return containsAny(strings.ToLower(message), routeIntentTerms)
}

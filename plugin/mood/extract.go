package mood

import (
	"regexp"
	"strings"
)

var (
	leadingCityPattern = regexp.MustCompile(`^([\p{L}][\p{L}\s'.-]{1,40})\s*,`)
	labeledCityPattern = regexp.MustCompile(`(?i)\b(?:city|город)\s*[:=-]\s*([\p{L}][\p{L}\s'.-]{1,40})`)
	latinCityPattern   = regexp.MustCompile(`(?i)\b(?:in|around|near)\s+([\p{L}][\p{L}\s'.-]{1,40})`)
	cyrillicCityPattern = regexp.MustCompile(`(?i)(?:^|[\s,])(?:в|по|около|рядом с)\s+([\p{L}][\p{L}\s'.-]{1,40})`)

	// \b is ASCII-only in RE2, so the Russian unit forms are terminated with
	// an explicit end-or-separator group instead.
	durationPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(min|mins|minute|minutes|hour|hours|hr|hrs|ч|час|часа|часов|мин|минута|минуты|минут)(?:$|[^\p{L}\d])`)

	currencyAmountPattern = regexp.MustCompile(`\$\s*\d+|\d+\s*\$`)
	budgetBoundPattern    = regexp.MustCompile(`(?i)(?:^|\s)(?:under|up to|до)\s*\$?\s*\d+\b`)

	edgeNoisePattern  = regexp.MustCompile(`^[,\s]+|[,\s]+$`)
	innerSpacePattern = regexp.MustCompile(`\s{2,}`)
)

// ExtractCity pulls a city name out of the message, trying in order a leading
// "<name>," pattern, a labeled city:/город: pattern, an "in/around/near"
// phrase, and the Cyrillic prepositional form. Returns "" when no pattern
// matches.
func ExtractCity(message string) string {
	for _, pattern := range []*regexp.Regexp{
		leadingCityPattern,
		labeledCityPattern,
		latinCityPattern,
		cyrillicCityPattern,
	} {
		if m := pattern.FindStringSubmatch(message); m != nil && m[1] != "" {
			return normalizeCityMatch(m[1])
		}
	}
	return ""
}

func normalizeCityMatch(value string) string {
	value = strings.TrimSpace(value)
	value = edgeNoisePattern.ReplaceAllString(value, "")
	return innerSpacePattern.ReplaceAllString(value, " ")
}

// ExtractDuration returns "<n> <unit>" for the first number-plus-time-unit
// token in the message, or "" when none is present.
func ExtractDuration(message string) string {
	m := durationPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}

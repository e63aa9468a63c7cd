// Package mood implements the heuristic text classifier that infers mood
// category, city, duration and constraint signals from free-form user text.
// It is intentionally a fast, explainable, zero-LLM classifier: good enough
// to gate "do we have enough context" without invoking the paid model. It
// never fails; absence of a signal is an empty value, not an error.
package mood

import "strings"

// Mood is one of the five fixed tags classifying the desired emotional tone
// of a walk.
type Mood string

const (
	MoodQuiet     Mood = "quiet"
	MoodGothic    Mood = "gothic"
	MoodEnergetic Mood = "energetic"
	MoodCozy      Mood = "cozy"
	MoodWeird     Mood = "weird"
)

// Moods lists all defined mood keys.
func Moods() []Mood {
	return []Mood{MoodQuiet, MoodGothic, MoodEnergetic, MoodCozy, MoodWeird}
}

// DetectMood scans the message for mood keyword signals in fixed priority
// order; the first matching category wins. Total: every input maps to exactly
// one mood, defaulting to cozy.
func DetectMood(message string) Mood {
	text := strings.ToLower(message)
	for _, signal := range moodSignals {
		if containsAny(text, signal.Terms) {
			return signal.Mood
		}
	}
	return MoodCozy
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMood(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Mood
	}{
		{name: "quiet english", input: "I want a quiet evening walk", expected: MoodQuiet},
		{name: "quiet russian", input: "хочу спокойную прогулку", expected: MoodQuiet},
		{name: "gothic", input: "something dark and gothic please", expected: MoodGothic},
		{name: "energetic", input: "fast active route", expected: MoodEnergetic},
		{name: "weird", input: "show me something strange", expected: MoodWeird},
		{name: "weird russian", input: "что-то необычное", expected: MoodWeird},
		{name: "default cozy", input: "a nice stroll", expected: MoodCozy},
		{name: "empty string", input: "", expected: MoodCozy},
		{name: "priority quiet over gothic", input: "quiet but dark streets", expected: MoodQuiet},
		{name: "priority gothic over energetic", input: "dark and fast", expected: MoodGothic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMood(tt.input))
		})
	}
}

// Totality: every input maps to exactly one of the five defined keys.
func TestDetectMood_Totality(t *testing.T) {
	inputs := []string{"", " ", "1234", "!@#$", "ром", "quiet dark active weird cozy", "\n\t"}
	valid := map[Mood]bool{}
	for _, m := range Moods() {
		valid[m] = true
	}
	for _, input := range inputs {
		assert.True(t, valid[DetectMood(input)], "input %q", input)
	}
}

func TestExtractCity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "leading comma", input: "Oslo, 90 minutes, sunny", expected: "Oslo"},
		{name: "labeled", input: "my city: Bergen please", expected: "Bergen please"},
		{name: "labeled russian", input: "город: Тромсё", expected: "Тромсё"},
		{name: "in phrase", input: "a walk in Trondheim", expected: "Trondheim"},
		{name: "near phrase", input: "somewhere near Stavanger", expected: "Stavanger"},
		{name: "cyrillic preposition", input: "прогулка в Осло", expected: "Осло"},
		{name: "bare name no pattern", input: "Oslo", expected: ""},
		{name: "no city", input: "I want to relax", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCity(tt.input))
		})
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "minutes", input: "I have 90 minutes", expected: "90 minutes"},
		{name: "short form", input: "45 min walk", expected: "45 min"},
		{name: "hours", input: "about 2 hours today", expected: "2 hours"},
		{name: "russian hours", input: "есть 2 часа", expected: "2 часа"},
		{name: "no duration", input: "a long walk", expected: ""},
		{name: "three digit number ignored", input: "150 minutes", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDuration(tt.input))
		})
	}
}

func TestMissingConstraints(t *testing.T) {
	t.Run("bare city name misses everything", func(t *testing.T) {
		missing := MissingConstraints("Oslo")
		// "Oslo" alone has no extractable pattern, so even city is missing.
		assert.GreaterOrEqual(t, len(missing), 4)
		assert.Contains(t, missing, ConstraintTime)
		assert.Contains(t, missing, ConstraintWeather)
		assert.Contains(t, missing, ConstraintCrowd)
		assert.Contains(t, missing, ConstraintBudget)
	})

	t.Run("full context leaves nothing missing", func(t *testing.T) {
		missing := MissingConstraints("Oslo, 90 minutes, sunny, quiet streets, under $20, cozy vibe")
		assert.Empty(t, missing)
	})

	t.Run("currency amount counts as budget", func(t *testing.T) {
		missing := MissingConstraints("walk for $15")
		assert.NotContains(t, missing, ConstraintBudget)
	})

	t.Run("russian budget bound", func(t *testing.T) {
		missing := MissingConstraints("маршрут до 500")
		assert.NotContains(t, missing, ConstraintBudget)
	})

	t.Run("never panics on empty", func(t *testing.T) {
		assert.Len(t, MissingConstraints(""), 5)
	})
}

func TestIsLikelyRouteIntent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "city pattern", input: "Bergen, tomorrow", expected: true},
		{name: "duration only", input: "I have 30 minutes", expected: true},
		{name: "keyword walk", input: "any walk ideas", expected: true},
		{name: "russian keyword", input: "посоветуй маршрут", expected: true},
		{name: "general chat", input: "hello there", expected: false},
		{name: "empty", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLikelyRouteIntent(tt.input))
		})
	}
}

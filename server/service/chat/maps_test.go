package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/store"
)

func TestStripRawURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "plain text untouched",
			input: "Option 1: Harbor Loop\n- Duration: 60 min",
			want:  "Option 1: Harbor Loop\n- Duration: 60 min",
		},
		{
			name:  "markdown link collapses to label",
			input: "Check [Bryggen](https://maps.example/bryggen) today",
			want:  "Check Bryggen today",
		},
		{
			name:  "bare url removed",
			input: "Start here https://evil.example/track?x=1 then walk",
			want:  "Start here then walk",
		},
		{
			name:  "line left empty is dropped",
			input: "First line\nhttps://only.example/url\nLast line",
			want:  "First line\nLast line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripRawURLs(tt.input))
		})
	}
}

func TestStripRawURLsIdempotent(t *testing.T) {
	input := "See [spot](https://a.example/x) and https://b.example/y here"
	once := StripRawURLs(input)
	assert.Equal(t, once, StripRawURLs(once))
	assert.NotContains(t, once, "http")
}

func TestBuildMapsSearchURL(t *testing.T) {
	url := BuildMapsSearchURL("Bryggen, Bergen, Norway")
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Bryggen%2C+Bergen%2C+Norway", url)
}

func TestBuildMapsWalkingURL(t *testing.T) {
	url := BuildMapsWalkingURL("Bergen city center", "Bryggen, Bergen, Norway", nil)
	assert.Contains(t, url, "https://www.google.com/maps/dir/?")
	assert.Contains(t, url, "api=1")
	assert.Contains(t, url, "travelmode=walking")
	assert.Contains(t, url, "origin=Bergen+city+center")
	assert.Contains(t, url, "destination=Bryggen%2C+Bergen%2C+Norway")
	assert.NotContains(t, url, "waypoints")

	withWaypoints := BuildMapsWalkingURL("a", "b", []string{"w1", "w2", "w3", "w4"})
	assert.Contains(t, withWaypoints, "waypoints=w1%7Cw2%7Cw3")
	assert.NotContains(t, withWaypoints, "w4")
}

func TestBuildMapsSuggestionsAnchorsInReply(t *testing.T) {
	record := cityknow.Find("Bergen")
	require.NotNil(t, record)

	reply := "Option 1: Harbor Walk\nPass " + record.Places[0].Name + " and " + record.Places[1].Name + "."
	suggestions := BuildMapsSuggestions("cozy walk in Bergen for 2 hours", reply, record, nil)
	require.Len(t, suggestions, 2)

	assert.Equal(t, record.Places[0].Name+" ("+record.Places[0].Kind+")", suggestions[0].Title)
	assert.Contains(t, suggestions[0].RouteURL, "origin=Bergen+city+center")
	// The second route chains from the first anchor.
	assert.Contains(t, suggestions[1].RouteURL, "origin="+strings.ReplaceAll(strings.ReplaceAll(record.Places[0].Name, " ", "+"), ",", "%2C"))
}

func TestBuildMapsSuggestionsSeededAnchors(t *testing.T) {
	record := cityknow.Find("Oslo")
	require.NotNil(t, record)

	// Reply mentions no known places, so seeded anchors kick in.
	suggestions := BuildMapsSuggestions("walk in Oslo for 2 hours", "Option 1: A Walk\nJust walk around.", record, nil)
	require.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 3)
	for _, suggestion := range suggestions {
		assert.Contains(t, suggestion.PlaceURL, "query=")
		assert.Contains(t, suggestion.RouteURL, "travelmode=walking")
	}

	again := BuildMapsSuggestions("walk in Oslo for 2 hours", "Option 1: A Walk\nJust walk around.", record, nil)
	assert.Equal(t, suggestions, again)
}

func TestBuildMapsSuggestionsOptionTitles(t *testing.T) {
	reply := "Option 1: Harbor Loop\nOption 2: Old Town Drift\nOption 3: Hill Climb\nOption 4: Extra"
	suggestions := BuildMapsSuggestions("walk in Springfield for 1 hour", reply, nil, nil)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Harbor Loop", suggestions[0].Title)
	assert.Contains(t, suggestions[0].PlaceURL, "query=Harbor+Loop%2C+Springfield")
}

func TestBuildMapsSuggestionsNoRouteIntent(t *testing.T) {
	assert.Empty(t, BuildMapsSuggestions("hello there", "Hi. How can I help?", nil, nil))
}

func TestBuildMapsSuggestionsNoCity(t *testing.T) {
	// Route intent but no resolvable city anywhere.
	reply := "Option 1: Somewhere"
	assert.Empty(t, BuildMapsSuggestions("I want a walk", reply, nil, nil))
}

func TestBuildMapsSuggestionsProfileCity(t *testing.T) {
	userProfile := &store.UserProfile{DefaultCity: "Springfield"}
	reply := "Option 1: Harbor Loop"
	suggestions := BuildMapsSuggestions("I want a walk", reply, nil, userProfile)
	require.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0].PlaceURL, "Springfield")
}

func TestAppendMapsLinks(t *testing.T) {
	suggestions := []MapSuggestion{
		{Title: "Bryggen (historic wharf)", PlaceURL: "https://maps.example/p1", RouteURL: "https://maps.example/r1"},
		{Title: "Mount Floyen (viewpoint)", PlaceURL: "https://maps.example/p2", RouteURL: "https://maps.example/r2"},
	}

	t.Run("fits within budget", func(t *testing.T) {
		out := AppendMapsLinks("Base reply", suggestions, 1200)
		assert.Contains(t, out, "Google Maps links:")
		assert.Contains(t, out, "1) Bryggen (historic wharf)")
		assert.Contains(t, out, "- [Open place](https://maps.example/p1)")
		assert.Contains(t, out, "- [Open walking route](https://maps.example/r2)")
		assert.LessOrEqual(t, len(out), 3600)
	})

	t.Run("no suggestions returns base", func(t *testing.T) {
		assert.Equal(t, "Base reply", AppendMapsLinks("Base reply", nil, 1200))
	})

	t.Run("empty reply stays empty", func(t *testing.T) {
		assert.Equal(t, "", AppendMapsLinks("  ", suggestions, 1200))
	})

	t.Run("degrades to single link", func(t *testing.T) {
		base := strings.Repeat("a", 200)
		out := AppendMapsLinks(base, suggestions, 100)
		assert.LessOrEqual(t, len(out), 300)
		assert.Contains(t, out, "Google Maps:")
		assert.Contains(t, out, "https://maps.example/r1")
		assert.NotContains(t, out, "https://maps.example/r2")
	})

	t.Run("hard truncation as last resort", func(t *testing.T) {
		base := strings.Repeat("a", 500)
		out := AppendMapsLinks(base, suggestions, 100)
		assert.Len(t, out, 300)
		assert.NotContains(t, out, "Google Maps")
	})

	t.Run("hard truncation keeps runes whole", func(t *testing.T) {
		base := strings.Repeat("я", 500)
		out := AppendMapsLinks(base, suggestions, 100)
		assert.True(t, utf8.ValidString(out))
		assert.Equal(t, 300, utf8.RuneCountInString(out))
		assert.Equal(t, strings.Repeat("я", 300), out)
	})
}

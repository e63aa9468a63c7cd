package routegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/plugin/mood"
)

func TestHashSeed(t *testing.T) {
	assert.Equal(t, uint32(0), HashSeed(""))
	assert.Equal(t, uint32('a'), HashSeed("a"))
	// Deterministic across calls.
	assert.Equal(t, HashSeed("oslo|quiet"), HashSeed("oslo|quiet"))
	assert.NotEqual(t, HashSeed("oslo|quiet"), HashSeed("oslo|cozy"))
}

func TestPickIndexes(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		count int
		seed  uint32
	}{
		{name: "five of five library size", n: 5, count: 3, seed: 7},
		{name: "seed larger than n", n: 5, count: 3, seed: 4294967291},
		{name: "count capped at n", n: 2, count: 3, seed: 1},
		{name: "single element", n: 1, count: 3, seed: 99},
		{name: "even n full pick", n: 4, count: 4, seed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickIndexes(tt.n, tt.count, tt.seed)
			want := tt.count
			if want > tt.n {
				want = tt.n
			}
			require.Len(t, got, want)
			seen := map[int]bool{}
			for _, idx := range got {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, tt.n)
				assert.False(t, seen[idx], "duplicate index %d", idx)
				seen[idx] = true
			}
			// Reproducible.
			assert.Equal(t, got, PickIndexes(tt.n, tt.count, tt.seed))
		})
	}

	assert.Nil(t, PickIndexes(0, 3, 5))
	assert.Nil(t, PickIndexes(5, 0, 5))
}

func TestPickIndexes_StrideWalk(t *testing.T) {
	// With n=5 and seed=0 the stride-2 walk is 0, 2, 4.
	assert.Equal(t, []int{0, 2, 4}, PickIndexes(5, 3, 0))
	// Starting offset follows the seed.
	assert.Equal(t, []int{1, 3, 0}, PickIndexes(5, 3, 1))
}

func TestBuildMockReply_Determinism(t *testing.T) {
	in := Input{
		Message: "Oslo, 90 minutes, sunny, quiet streets, under $20, cozy vibe",
		City:    cityknow.Find("Oslo"),
	}
	first := BuildMockReply(in)
	second := BuildMockReply(in)
	assert.Equal(t, first, second)
}

func TestBuildMockReply_GeneralChat(t *testing.T) {
	reply := BuildMockReply(Input{Message: "hello there"})
	assert.Contains(t, reply, "Hi. I can chat on general topics")
	assert.Contains(t, reply, FollowUpInvite)
	assert.NotContains(t, reply, "Option 1")

	deflection := BuildMockReply(Input{Message: "what is 2+2"})
	assert.Contains(t, deflection, "I can answer non-city questions briefly")
}

func TestBuildMockReply_ClarificationGating(t *testing.T) {
	// "Oslo" alone: city present as bare word, nothing else extractable.
	reply := BuildMockReply(Input{Message: "walk in Oslo", City: cityknow.Find("Oslo")})
	assert.Contains(t, reply, "Before I lock the route, I need a few details:")
	assert.Contains(t, reply, "1) City (currently: Oslo)")
	assert.Contains(t, reply, "2) Time available (currently: not provided)")
	assert.NotContains(t, reply, "Option 1")
	assert.True(t, strings.HasSuffix(reply, FollowUpInvite))
}

func TestBuildMockReply_FullContext(t *testing.T) {
	city := cityknow.Find("Oslo")
	require.NotNil(t, city)
	reply := BuildMockReply(Input{
		Message: "Oslo, 90 minutes, sunny, quiet streets, under $20, cozy vibe",
		City:    city,
	})

	for _, option := range []string{"Option 1:", "Option 2:", "Option 3:"} {
		assert.Contains(t, reply, option)
	}
	assert.NotContains(t, reply, "Option 4:")
	assert.Contains(t, reply, "- Duration: 90 minutes target")
	assert.Contains(t, reply, "- Vibe tags: ")
	assert.Contains(t, reply, "- Route summary: ")
	assert.Contains(t, reply, "- Bonus tip: ")
	assert.NotContains(t, reply, "{city}")
	assert.Contains(t, reply, "Oslo")

	// The three options must be distinct titles.
	titles := map[string]bool{}
	for _, line := range strings.Split(reply, "\n") {
		if strings.HasPrefix(line, "Option ") {
			title := strings.SplitN(line, ": ", 2)[1]
			assert.False(t, titles[title], "duplicate option title %q", title)
			titles[title] = true
		}
	}
	assert.Len(t, titles, 3)
}

func TestBuildMockReply_AnchorGrounding(t *testing.T) {
	city := cityknow.Find("Bergen")
	require.NotNil(t, city)
	reply := BuildMockReply(Input{
		Message: "Bergen, 60 minutes, light rain, low crowds, free budget",
		City:    city,
	})

	require.Contains(t, reply, "- Suggested local anchor: ")
	known := map[string]bool{}
	for _, place := range city.Places {
		known[place.Name] = true
	}
	for _, line := range strings.Split(reply, "\n") {
		if !strings.HasPrefix(line, "- Suggested local anchor: ") {
			continue
		}
		rest := strings.TrimPrefix(line, "- Suggested local anchor: ")
		name := rest[:strings.LastIndex(rest, " (")]
		assert.True(t, known[name], "anchor %q not in Bergen knowledge", name)
	}
}

func TestBuildMockReply_ProfileDefaultCity(t *testing.T) {
	// With a profile default city, "city" no longer counts as missing, but the
	// other gaps still trigger clarification.
	reply := BuildMockReply(Input{Message: "I want a cozy walk", DefaultCity: "Bergen"})
	assert.Contains(t, reply, "1) City (currently: Bergen)")

	// Enough context plus profile city: options branch, profile city used.
	withContext := BuildMockReply(Input{
		Message:     "I need a cozy walk for 45 minutes, sunny weather, low crowds, cheap",
		DefaultCity: "Bergen",
	})
	assert.Contains(t, withContext, "MoodRoute draft for Bergen")
	assert.Contains(t, withContext, "Option 3:")
}

func TestBuildMockReply_EmptyCityDegrades(t *testing.T) {
	reply := BuildMockReply(Input{
		Message: "quiet walk for 30 minutes, sunny, no crowds, free of charge",
	})
	assert.Contains(t, reply, "MoodRoute draft for "+DefaultCityLabel)
	assert.NotContains(t, reply, "{city}")
}

func TestBuildMockReply_SingleMissingNudge(t *testing.T) {
	reply := BuildMockReply(Input{
		Message: "Oslo, 90 minutes, sunny, quiet streets",
		City:    cityknow.Find("Oslo"),
	})
	assert.Contains(t, reply, `Assumption used: missing "budget".`)
}

func TestBuildMockReply_AttachmentNotes(t *testing.T) {
	clarify := BuildMockReply(Input{Message: "walk somewhere nice", HasAttachment: true})
	assert.Contains(t, clarify, "I see an attached photo.")

	options := BuildMockReply(Input{
		Message:       "Oslo, 90 minutes, sunny, quiet streets, under $20",
		City:          cityknow.Find("Oslo"),
		HasAttachment: true,
	})
	assert.Contains(t, options, "Photo note: in mock mode image analysis is limited.")
}

func TestTemplatesFor_Total(t *testing.T) {
	for _, m := range mood.Moods() {
		assert.Len(t, TemplatesFor(m), 5, "mood %s", m)
	}
	// Unknown key degrades to cozy rather than nil.
	assert.Equal(t, TemplatesFor(mood.MoodCozy), TemplatesFor(mood.Mood("nonsense")))
	for _, m := range mood.Moods() {
		for _, tpl := range TemplatesFor(m) {
			assert.Contains(t, tpl.Summary, "{city}")
		}
	}
}

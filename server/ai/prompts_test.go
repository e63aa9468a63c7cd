package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/store"
)

func TestFormatCityGrounding(t *testing.T) {
	t.Run("nil record", func(t *testing.T) {
		assert.Empty(t, FormatCityGrounding(nil))
	})

	t.Run("known city", func(t *testing.T) {
		record := cityknow.Find("Bergen")
		require.NotNil(t, record)

		prompt := FormatCityGrounding(record)
		assert.Contains(t, prompt, "City grounding context")
		assert.Contains(t, prompt, "City: Bergen, Norway")
		for _, place := range record.Places {
			assert.Contains(t, prompt, place.Name)
		}
	})

	t.Run("places are capped", func(t *testing.T) {
		record := &cityknow.CityRecord{City: "Testville", County: "Test"}
		for i := 0; i < 12; i++ {
			record.Places = append(record.Places, cityknow.PlaceRecord{
				Name: "Place " + strings.Repeat("x", i+1),
				Kind: "park",
			})
		}
		prompt := FormatCityGrounding(record)
		assert.Equal(t, maxGroundingPlaces, strings.Count(prompt, "- Place "))
	})
}

func TestFormatProfileContext(t *testing.T) {
	t.Run("nil profile", func(t *testing.T) {
		assert.Empty(t, FormatProfileContext(nil))
	})

	t.Run("empty profile", func(t *testing.T) {
		assert.Empty(t, FormatProfileContext(&store.UserProfile{}))
	})

	t.Run("populated profile", func(t *testing.T) {
		prompt := FormatProfileContext(&store.UserProfile{
			DefaultCity:       "Oslo",
			DefaultVibe:       "cozy",
			VisitedPlacesJSON: `["Vigeland Park","Aker Brygge"]`,
		})
		assert.Contains(t, prompt, "User profile context")
		assert.Contains(t, prompt, "- Default city: Oslo")
		assert.Contains(t, prompt, "- Preferred vibe: cozy")
		assert.Contains(t, prompt, "Vigeland Park, Aker Brygge")
		assert.Contains(t, prompt, "avoid repeating already visited places")
	})

	t.Run("malformed visited json is ignored", func(t *testing.T) {
		prompt := FormatProfileContext(&store.UserProfile{
			DefaultCity:       "Oslo",
			VisitedPlacesJSON: "{broken",
		})
		assert.NotContains(t, prompt, "Places already visited")
	})
}

func TestIsSafeUploadURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"/uploads/1700000000-abc123.png", true},
		{"/uploads/photo.JPG", true},
		{"/uploads/../secret.png", false},
		{"/uploads/sub/dir.png", false},
		{"uploads/photo.png", false},
		{"https://evil.example/uploads/photo.png", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeUploadURL(tt.url))
		})
	}
}

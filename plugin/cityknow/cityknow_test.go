package cityknow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase passthrough", input: "oslo", expected: "oslo"},
		{name: "uppercase", input: "TRONDHEIM", expected: "trondheim"},
		{name: "diacritics stripped", input: "Ålesund", expected: "alesund"},
		{name: "punctuation collapsed", input: "Oslo,  Norway!", expected: "oslo norway"},
		{name: "leading trailing noise", input: "  --Bergen-- ", expected: "bergen"},
		{name: "empty", input: "", expected: ""},
		{name: "only punctuation", input: "?!,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestFind_AliasNormalization(t *testing.T) {
	// All spellings of the same city must resolve to the same record.
	upper := Find("TRONDHEIM")
	comma := Find("Trondheim,")
	qualified := Find("trondheim city")

	require.NotNil(t, upper)
	assert.Same(t, upper, comma)
	assert.Same(t, upper, qualified)
	assert.Equal(t, "Trondheim", upper.City)
	assert.Equal(t, "Trondelag", upper.County)
	assert.Len(t, upper.Places, 5)
}

func TestFind_AliasVariants(t *testing.T) {
	assert.NotNil(t, Find("aalesund"))
	assert.NotNil(t, Find("tromsoe"))
	assert.Same(t, Find("aalesund"), Find("Alesund"))
}

func TestFind_Miss(t *testing.T) {
	assert.Nil(t, Find("Atlantis"))
	assert.Nil(t, Find(""))
	assert.Nil(t, Find("   "))
	// Prefix matching goes one way only: a prefix of a city name is a miss.
	assert.Nil(t, Find("trond"))
}

func TestAll_DataShape(t *testing.T) {
	cities := All()
	require.NotEmpty(t, cities)
	for _, city := range cities {
		assert.NotEmpty(t, city.City)
		assert.NotEmpty(t, city.County)
		assert.NotEmpty(t, city.Aliases)
		require.NotEmpty(t, city.Places)
		for _, place := range city.Places {
			assert.NotEmpty(t, place.Name)
			assert.NotEmpty(t, place.Kind)
		}
	}
}

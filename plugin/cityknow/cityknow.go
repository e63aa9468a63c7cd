// Package cityknow provides the static city knowledge base used to ground
// walk recommendations in curated points of interest.
package cityknow

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PlaceRecord is a curated point of interest inside a city.
type PlaceRecord struct {
	Name string
	Kind string
}

// CityRecord is an immutable knowledge entry for a single city.
type CityRecord struct {
	City    string
	County  string
	Aliases []string
	Places  []PlaceRecord
}

var aliasIndex = map[string]*CityRecord{}

func init() {
	for _, city := range norwayCities {
		for _, alias := range city.Aliases {
			aliasIndex[NormalizeKey(alias)] = city
		}
	}
}

// NormalizeKey canonicalizes a city name for lookup: lowercased, diacritics
// stripped, non-alphanumeric runs collapsed to single spaces, trimmed.
func NormalizeKey(value string) string {
	decomposed := norm.NFD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	lastSpace := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Find resolves a city name or alias to its knowledge record. The alias index
// is consulted first; a prefix match against the city's own normalized name
// handles trailing qualifiers like "Oslo, Norway". Returns nil when the city
// is unknown, which callers must treat as "no grounding available".
func Find(cityName string) *CityRecord {
	if cityName == "" {
		return nil
	}
	key := NormalizeKey(cityName)
	if key == "" {
		return nil
	}
	if city, ok := aliasIndex[key]; ok {
		return city
	}
	for _, city := range norwayCities {
		cityKey := NormalizeKey(city.City)
		if key == cityKey || strings.HasPrefix(key, cityKey+" ") {
			return city
		}
	}
	return nil
}

// All returns every known city record.
func All() []*CityRecord {
	return norwayCities
}

package routegen

import "github.com/moodroute/moodroute/plugin/cityknow"

// HashSeed computes the deterministic selection seed: a multiply-by-31
// rolling hash over the runes of the input, in unsigned 32-bit arithmetic.
// Same input text always yields the same seed, which keeps the mock
// generator reproducible and testable.
func HashSeed(value string) uint32 {
	var hash uint32
	for _, r := range value {
		hash = hash*31 + uint32(r)
	}
	return hash
}

// PickIndexes is the seeded index walk used for all deterministic selection:
// starting at seed % n, it steps by a fixed stride of 2 (mod n), collecting
// distinct indexes until min(count, n) are chosen. With an odd n the stride-2
// walk visits every element before repeating; should the walk ever close a
// full cycle without progress (even n asked for more than n/2 picks), the
// stride degrades to 1 so the function stays total.
func PickIndexes(n, count int, seed uint32) []int {
	if n <= 0 || count <= 0 {
		return nil
	}
	if count > n {
		count = n
	}

	chosen := make([]int, 0, count)
	seen := make(map[int]bool, count)
	cursor := int(seed % uint32(n))
	stride := 2
	sinceProgress := 0
	for len(chosen) < count {
		idx := cursor % n
		if !seen[idx] {
			seen[idx] = true
			chosen = append(chosen, idx)
			sinceProgress = 0
		} else {
			sinceProgress++
			if sinceProgress >= n {
				stride = 1
				sinceProgress = 0
			}
		}
		cursor += stride
	}
	return chosen
}

// PickRoutes selects three distinct templates from the set using the seeded
// index walk.
func PickRoutes(templates []RouteTemplate, seed uint32) []RouteTemplate {
	indexes := PickIndexes(len(templates), 3, seed)
	picked := make([]RouteTemplate, 0, len(indexes))
	for _, idx := range indexes {
		picked = append(picked, templates[idx])
	}
	return picked
}

// PickAnchors selects up to three distinct anchor places from a city's place
// list with the same walk, so the mock reply and the maps synthesizer agree
// on anchors for a given seed.
func PickAnchors(city *cityknow.CityRecord, seed uint32) []cityknow.PlaceRecord {
	if city == nil || len(city.Places) == 0 {
		return nil
	}
	indexes := PickIndexes(len(city.Places), 3, seed)
	anchors := make([]cityknow.PlaceRecord, 0, len(indexes))
	for _, idx := range indexes {
		anchors = append(anchors, city.Places[idx])
	}
	return anchors
}

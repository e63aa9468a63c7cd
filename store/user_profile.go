package store

import "encoding/json"

// UserProfile holds a user's default walk preferences. It is an input to the
// reply generator: the default city is the fallback when no city is mentioned
// in the message, and visited places are surfaced to the live model so it can
// avoid repeats.
type UserProfile struct {
	UserID            int32
	DefaultCity       string
	DefaultVibe       string
	DefaultBudget     string
	CrowdTolerance    string
	WeatherPreference string
	DefaultDuration   string
	Notes             string
	VisitedPlacesJSON string
	CreatedTs         int64
	UpdatedTs         int64
}

// VisitedPlaces decodes the stored JSON list. Malformed JSON degrades to an
// empty list rather than an error.
func (p *UserProfile) VisitedPlaces() []string {
	if p.VisitedPlacesJSON == "" {
		return []string{}
	}
	var places []string
	if err := json.Unmarshal([]byte(p.VisitedPlacesJSON), &places); err != nil {
		return []string{}
	}
	return places
}

type FindUserProfile struct {
	UserID int32
}

type UpsertUserProfile struct {
	UserID            int32
	DefaultCity       string
	DefaultVibe       string
	DefaultBudget     string
	CrowdTolerance    string
	WeatherPreference string
	DefaultDuration   string
	Notes             string
	VisitedPlacesJSON string
}

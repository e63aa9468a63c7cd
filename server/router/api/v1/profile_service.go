package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/store"
)

// Length caps applied to stored profile fields.
const (
	maxCityLength     = 80
	maxVibeLength     = 50
	maxBudgetLength   = 50
	maxCrowdLength    = 50
	maxWeatherLength  = 60
	maxDurationLength = 60
	maxNotesLength    = 800

	maxVisitedPlaces      = 120
	maxVisitedPlaceLength = 120
)

type profilePayload struct {
	DefaultCity       string   `json:"default_city"`
	DefaultVibe       string   `json:"default_vibe"`
	DefaultBudget     string   `json:"default_budget"`
	CrowdTolerance    string   `json:"crowd_tolerance"`
	WeatherPreference string   `json:"weather_preference"`
	DefaultDuration   string   `json:"default_duration"`
	Notes             string   `json:"notes"`
	VisitedPlaces     []string `json:"visited_places"`
	CreatedTs         int64    `json:"created_at"`
	UpdatedTs         int64    `json:"updated_at"`
}

func convertProfile(userProfile *store.UserProfile) *profilePayload {
	if userProfile == nil {
		return &profilePayload{VisitedPlaces: []string{}}
	}
	return &profilePayload{
		DefaultCity:       userProfile.DefaultCity,
		DefaultVibe:       userProfile.DefaultVibe,
		DefaultBudget:     userProfile.DefaultBudget,
		CrowdTolerance:    userProfile.CrowdTolerance,
		WeatherPreference: userProfile.WeatherPreference,
		DefaultDuration:   userProfile.DefaultDuration,
		Notes:             userProfile.Notes,
		VisitedPlaces:     userProfile.VisitedPlaces(),
		CreatedTs:         userProfile.CreatedTs,
		UpdatedTs:         userProfile.UpdatedTs,
	}
}

func (s *APIV1Service) GetProfile(c echo.Context) error {
	user := userFromContext(c)
	userProfile, err := s.ensureUserProfile(c, user.ID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to load profile.")
	}
	return c.JSON(http.StatusOK, map[string]any{"profile": convertProfile(userProfile)})
}

type updateProfileRequest struct {
	DefaultCity       string `json:"default_city"`
	DefaultVibe       string `json:"default_vibe"`
	DefaultBudget     string `json:"default_budget"`
	CrowdTolerance    string `json:"crowd_tolerance"`
	WeatherPreference string `json:"weather_preference"`
	DefaultDuration   string `json:"default_duration"`
	Notes             string `json:"notes"`
	// VisitedPlaces accepts either a JSON list or a newline-separated string.
	VisitedPlaces json.RawMessage `json:"visited_places"`
}

func (s *APIV1Service) UpdateProfile(c echo.Context) error {
	user := userFromContext(c)
	request := &updateProfileRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	visited := normalizeVisitedPlaces(decodeVisitedPlaces(request.VisitedPlaces))
	visitedJSON, err := json.Marshal(visited)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to update profile.")
	}

	userProfile, err := s.Store.UpsertUserProfile(c.Request().Context(), &store.UpsertUserProfile{
		UserID:            user.ID,
		DefaultCity:       truncate(normalizeText(request.DefaultCity), maxCityLength),
		DefaultVibe:       truncate(normalizeText(request.DefaultVibe), maxVibeLength),
		DefaultBudget:     truncate(normalizeText(request.DefaultBudget), maxBudgetLength),
		CrowdTolerance:    truncate(normalizeText(request.CrowdTolerance), maxCrowdLength),
		WeatherPreference: truncate(normalizeText(request.WeatherPreference), maxWeatherLength),
		DefaultDuration:   truncate(normalizeText(request.DefaultDuration), maxDurationLength),
		Notes:             truncate(normalizeText(request.Notes), maxNotesLength),
		VisitedPlacesJSON: string(visitedJSON),
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to update profile.")
	}
	return c.JSON(http.StatusOK, map[string]any{"profile": convertProfile(userProfile)})
}

// ensureUserProfile returns the user's profile, creating an empty one first
// if none exists yet.
func (s *APIV1Service) ensureUserProfile(c echo.Context, userID int32) (*store.UserProfile, error) {
	ctx := c.Request().Context()
	userProfile, err := s.Store.GetUserProfile(ctx, &store.FindUserProfile{UserID: userID})
	if err != nil {
		return nil, err
	}
	if userProfile != nil {
		return userProfile, nil
	}
	return s.Store.UpsertUserProfile(ctx, &store.UpsertUserProfile{
		UserID:            userID,
		VisitedPlacesJSON: "[]",
	})
}

// decodeVisitedPlaces accepts a JSON array of strings or a single string
// with newline-separated entries.
func decodeVisitedPlaces(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.Split(single, "\n")
	}
	return nil
}

// normalizeVisitedPlaces trims, truncates, dedupes, and caps the list.
func normalizeVisitedPlaces(places []string) []string {
	seen := make(map[string]bool, len(places))
	cleaned := make([]string, 0, len(places))
	for _, place := range places {
		place = normalizeText(strings.TrimRight(place, "\r"))
		if place == "" {
			continue
		}
		if utf8.RuneCountInString(place) > maxVisitedPlaceLength {
			place = truncate(place, maxVisitedPlaceLength) + "..."
		}
		if seen[place] {
			continue
		}
		seen[place] = true
		cleaned = append(cleaned, place)
		if len(cleaned) == maxVisitedPlaces {
			break
		}
	}
	return cleaned
}

// truncate caps a string at limit characters without splitting a rune.
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}

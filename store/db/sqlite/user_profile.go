package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/moodroute/moodroute/store"
)

const userProfileColumns = "user_id, default_city, default_vibe, default_budget, crowd_tolerance, weather_preference, default_duration, notes, visited_places_json, created_ts, updated_ts"

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profile WHERE user_id = ` + placeholder(1)
	userProfile := &store.UserProfile{}
	err := d.db.QueryRowContext(ctx, query, find.UserID).Scan(
		&userProfile.UserID,
		&userProfile.DefaultCity,
		&userProfile.DefaultVibe,
		&userProfile.DefaultBudget,
		&userProfile.CrowdTolerance,
		&userProfile.WeatherPreference,
		&userProfile.DefaultDuration,
		&userProfile.Notes,
		&userProfile.VisitedPlacesJSON,
		&userProfile.CreatedTs,
		&userProfile.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return userProfile, nil
}

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UpsertUserProfile) (*store.UserProfile, error) {
	now := time.Now().Unix()
	fields := []string{"user_id", "default_city", "default_vibe", "default_budget", "crowd_tolerance", "weather_preference", "default_duration", "notes", "visited_places_json", "created_ts", "updated_ts"}
	args := []any{
		upsert.UserID,
		upsert.DefaultCity,
		upsert.DefaultVibe,
		upsert.DefaultBudget,
		upsert.CrowdTolerance,
		upsert.WeatherPreference,
		upsert.DefaultDuration,
		upsert.Notes,
		upsert.VisitedPlacesJSON,
		now,
		now,
	}

	stmt := `INSERT INTO user_profile (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			default_city = EXCLUDED.default_city,
			default_vibe = EXCLUDED.default_vibe,
			default_budget = EXCLUDED.default_budget,
			crowd_tolerance = EXCLUDED.crowd_tolerance,
			weather_preference = EXCLUDED.weather_preference,
			default_duration = EXCLUDED.default_duration,
			notes = EXCLUDED.notes,
			visited_places_json = EXCLUDED.visited_places_json,
			updated_ts = EXCLUDED.updated_ts
		RETURNING ` + userProfileColumns
	userProfile := &store.UserProfile{}
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&userProfile.UserID,
		&userProfile.DefaultCity,
		&userProfile.DefaultVibe,
		&userProfile.DefaultBudget,
		&userProfile.CrowdTolerance,
		&userProfile.WeatherPreference,
		&userProfile.DefaultDuration,
		&userProfile.Notes,
		&userProfile.VisitedPlacesJSON,
		&userProfile.CreatedTs,
		&userProfile.UpdatedTs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return userProfile, nil
}

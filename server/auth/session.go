// Package auth implements account credentials, server-side sessions, and the
// GitHub OAuth login flow.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/moodroute/moodroute/store"
)

// SessionCookieName is the cookie carrying the raw session token.
const SessionCookieName = "moodroute_session"

// HashSessionToken returns the hex SHA-256 digest stored in place of the
// raw token.
func HashSessionToken(rawToken string) string {
	digest := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(digest[:])
}

// NewSessionToken generates a fresh opaque session token.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}
	return hex.EncodeToString(buf), nil
}

// CreateSession persists a new session for userID and returns the raw token
// together with its expiry. Only the token hash reaches the database.
func CreateSession(ctx context.Context, s *store.Store, userID int32, ttl time.Duration) (string, time.Time, error) {
	rawToken, err := NewSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	if _, err := s.CreateSession(ctx, &store.Session{
		UserID:    userID,
		TokenHash: HashSessionToken(rawToken),
		CreatedTs: now.Unix(),
		ExpiresTs: expiresAt.Unix(),
	}); err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to create session")
	}

	return rawToken, expiresAt, nil
}

// DeleteSessionByToken removes the session identified by rawToken, if any.
func DeleteSessionByToken(ctx context.Context, s *store.Store, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	tokenHash := HashSessionToken(rawToken)
	return s.DeleteSession(ctx, &store.DeleteSession{TokenHash: &tokenHash})
}

// GetUserFromSessionToken resolves rawToken to its user. An expired session
// is deleted on sight and resolves to nil. A nil user with a nil error means
// the token is simply not valid.
func GetUserFromSessionToken(ctx context.Context, s *store.Store, rawToken string) (*store.User, error) {
	if rawToken == "" {
		return nil, nil
	}

	tokenHash := HashSessionToken(rawToken)
	session, err := s.GetSession(ctx, &store.FindSession{TokenHash: &tokenHash})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}
	if session == nil {
		return nil, nil
	}
	if session.ExpiresTs <= time.Now().Unix() {
		if err := s.DeleteSession(ctx, &store.DeleteSession{ID: &session.ID}); err != nil {
			return nil, errors.Wrap(err, "failed to delete expired session")
		}
		return nil, nil
	}

	user, err := s.GetUser(ctx, &store.FindUser{ID: &session.UserID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session user")
	}
	return user, nil
}

// BuildSessionCookie builds the login cookie for rawToken.
func BuildSessionCookie(rawToken string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    rawToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// BuildClearSessionCookie builds the cookie that logs the client out.
func BuildClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

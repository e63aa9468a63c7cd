package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/moodroute/moodroute/store"
)

var (
	emailPattern           = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameInvalidPattern = regexp.MustCompile(`[^a-z0-9._-]+`)
	usernameRepeatPattern  = regexp.MustCompile(`_{2,}`)
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail performs a light shape check on an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeUsernameBase turns arbitrary input into a username candidate:
// lowercase, restricted charset, trimmed separators, 3 to 32 runes.
func NormalizeUsernameBase(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = usernameInvalidPattern.ReplaceAllString(normalized, "_")
	normalized = usernameRepeatPattern.ReplaceAllString(normalized, "_")
	normalized = strings.Trim(normalized, "_-.")

	if normalized == "" {
		return "moodroute_user"
	}
	if len(normalized) >= 3 {
		if len(normalized) > 32 {
			return normalized[:32]
		}
		return normalized
	}
	return normalized + "_user"
}

// MakeUniqueUsername finds an unused username derived from preferred by
// appending numeric suffixes. After too many collisions it gives up and
// returns a random handle.
func MakeUniqueUsername(ctx context.Context, s *store.Store, preferred string) (string, error) {
	base := NormalizeUsernameBase(preferred)
	for attempt := 0; attempt < 100; attempt++ {
		candidate := base
		if attempt > 0 {
			suffix := fmt.Sprintf("_%d", attempt)
			if len(candidate)+len(suffix) > 32 {
				candidate = candidate[:32-len(suffix)]
			}
			candidate += suffix
		}

		existing, err := s.GetUser(ctx, &store.FindUser{Username: &candidate})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "user_" + hex.EncodeToString(buf), nil
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
	assert.False(t, VerifyPassword("anything", ""))
}

func TestSessionTokenHashing(t *testing.T) {
	token, err := NewSessionToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := NewSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	hash := HashSessionToken(token)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, token, hash)
	assert.Equal(t, hash, HashSessionToken(token))
}

func TestBuildSessionCookie(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	cookie := BuildSessionCookie("raw-token", expiresAt, false)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "raw-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)

	secureCookie := BuildSessionCookie("raw-token", expiresAt, true)
	assert.True(t, secureCookie.Secure)

	cleared := BuildClearSessionCookie(false)
	assert.Equal(t, SessionCookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestNormalizeUsernameBase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "jane_doe"},
		{"  weird---name  ", "weird---name"},
		{"__trimmed__", "trimmed"},
		{"", "moodroute_user"},
		{"!!", "moodroute_user"},
		{"ab", "ab_user"},
		{"averyveryveryverylongusernamethatexceedslimits", "averyveryveryverylongusernametha"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeUsernameBase(tt.input)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 32)
		})
	}
}

func TestStateStore(t *testing.T) {
	now := time.Now()
	s := NewStateStore()
	s.now = func() time.Time { return now }

	state, err := s.Issue("/profile")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	t.Run("unknown state", func(t *testing.T) {
		assert.Nil(t, s.Consume("bogus"))
	})

	t.Run("consume is single use", func(t *testing.T) {
		stored := s.Consume(state)
		require.NotNil(t, stored)
		assert.Equal(t, "/profile", stored.NextPath)
		assert.Nil(t, s.Consume(state))
	})

	t.Run("expired state", func(t *testing.T) {
		state, err := s.Issue("/chat")
		require.NoError(t, err)
		now = now.Add(stateTTL + time.Second)
		assert.Nil(t, s.Consume(state))
		// Expired consumption still burns the state.
		assert.Nil(t, s.Consume(state))
	})
}

func TestStateStoreSweep(t *testing.T) {
	now := time.Now()
	s := NewStateStore()
	s.now = func() time.Time { return now }

	abandoned, err := s.Issue("/chat")
	require.NoError(t, err)

	now = now.Add(stateTTL + time.Second)
	fresh, err := s.Issue("/profile")
	require.NoError(t, err)

	assert.Equal(t, 1, s.sweepExpired())

	s.mu.Lock()
	_, abandonedKept := s.states[abandoned]
	_, freshKept := s.states[fresh]
	s.mu.Unlock()
	assert.False(t, abandonedKept)
	assert.True(t, freshKept)

	stored := s.Consume(fresh)
	require.NotNil(t, stored)
	assert.Equal(t, "/profile", stored.NextPath)
}

func TestNormalizeNextPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/profile", "/profile"},
		{"/chat", "/chat"},
		{"", "/chat"},
		{"//evil.example", "/chat"},
		{"https://evil.example", "/chat"},
		{"/api/auth/me", "/chat"},
		{"relative/path", "/chat"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNextPath(tt.input))
		})
	}
}

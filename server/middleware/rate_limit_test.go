package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(5)
	for i := 0; i < 5; i++ {
		require.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i)
	}
	require.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(2)
	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	require.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterDefaultsOnInvalidRate(t *testing.T) {
	rl := NewRateLimiter(0)
	require.True(t, rl.Allow("10.0.0.3"))
}

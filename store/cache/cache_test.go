package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.Set(ctx, "a", 1)
	value, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Size())
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})
	defer c.Close()

	c.SetWithTTL(ctx, "a", "x", -time.Second)
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Size())
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	evicted := []string{}
	c := New(Config{OnEviction: func(key string, _ any) {
		evicted = append(evicted, key)
	}})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Delete(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, evicted)
}

func TestCacheMaxItems(t *testing.T) {
	ctx := context.Background()
	c := New(Config{MaxItems: 3})
	defer c.Close()

	for i := 0; i < 10; i++ {
		c.Set(ctx, fmt.Sprintf("key-%d", i), i)
	}
	assert.LessOrEqual(t, c.Size(), int64(3))
}

func TestCacheOverwriteKeepsSize(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "a", 2)
	value, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, int64(1), c.Size())
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Clear(ctx)
	assert.Equal(t, int64(0), c.Size())
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderscope/journal/backend/pkg/config"
)

func TestDisabledClientIsNoOp(t *testing.T) {
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	defer client.Close()

	assert.False(t, client.Enabled())

	cache := NewCache(client, "journal")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	found, err := cache.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.DeletePattern(ctx, "k:*"))
}

func TestAnalyticsKey(t *testing.T) {
	key := AnalyticsKey("user-1", "metrics")
	assert.Equal(t, "analytics:user-1:metrics", key)
}

func TestAnalyticsUserPattern(t *testing.T) {
	pattern := AnalyticsUserPattern("user-1")
	assert.Equal(t, "analytics:user-1:*", pattern)

	// The pattern must cover every endpoint key for the user
	assert.Contains(t, AnalyticsKey("user-1", "heatmap"), "analytics:user-1:")
}

package publisher

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	stream := "test_pricewatcher_digests"
	client.Del(ctx, stream)
	defer client.Del(ctx, stream)

	publisher := NewRedisPublisher("localhost:6379", 0, stream, 100, "run-42")
	defer publisher.Close()

	require.NoError(t, publisher.Publish(ctx, "Watched products:\n"))
	require.NoError(t, publisher.Publish(ctx, "second chunk"))

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "run-42", entries[0].Values["run_id"])
	assert.Equal(t, "Watched products:\n", entries[0].Values["message"])
	assert.Equal(t, "second chunk", entries[1].Values["message"])
	assert.Equal(t, "redis:"+stream, publisher.Target())
}

package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

func TestDialRedis(t *testing.T) {
	t.Parallel()

	t.Run("rejects a malformed connection string", func(t *testing.T) {
		t.Parallel()
		_, err := sessionstore.DialRedis(context.Background(), sessionstore.RedisConfig{
			URL:            "not-a-redis-url",
			ConnectTimeout: time.Second,
			RetryAttempts:  1,
		})
		assert.ErrorIs(t, err, sessionstore.ErrInvalidRedisURL)
	})

	t.Run("gives up on an unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := sessionstore.DialRedis(context.Background(), sessionstore.RedisConfig{
			URL:            "redis://127.0.0.1:1/0",
			ConnectTimeout: 300 * time.Millisecond,
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
		})
		assert.ErrorIs(t, err, sessionstore.ErrRedisUnavailable)
	})
}

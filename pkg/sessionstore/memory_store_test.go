package sessionstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetadeleste/avkit/pkg/sessionstore"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		store := sessionstore.NewMemoryStore()

		require.NoError(t, store.Set(ctx, "at", "tok1"))
		value, err := store.Get(ctx, "at")
		require.NoError(t, err)
		assert.Equal(t, "tok1", value)
	})

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()
		store := sessionstore.NewMemoryStore()

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, sessionstore.ErrKeyNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		store := sessionstore.NewMemoryStore()

		require.NoError(t, store.Set(ctx, "at", "tok1"))
		require.NoError(t, store.Delete(ctx, "at"))
		require.NoError(t, store.Delete(ctx, "at"))

		_, err := store.Get(ctx, "at")
		assert.ErrorIs(t, err, sessionstore.ErrKeyNotFound)
	})

	t.Run("rejects empty keys", func(t *testing.T) {
		t.Parallel()
		store := sessionstore.NewMemoryStore()

		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, sessionstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Set(ctx, "", "v"), sessionstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), sessionstore.ErrEmptyKey)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		store := sessionstore.NewMemoryStore()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", n%5)
				_ = store.Set(ctx, key, "v")
				_, _ = store.Get(ctx, key)
				_ = store.Delete(ctx, key)
			}(i)
		}
		wg.Wait()
	})
}

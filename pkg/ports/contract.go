package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/domain"
)

// RunStateStoreContract verifies that a StateStore implementation adheres to
// the interface contract. Every adapter's test suite runs this.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		key := prefix + "/slot"
		err := store.Set(ctx, key, []byte(`{"foo":"bar"}`))
		require.NoError(t, err, "Set should not return error")

		value, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, `{"foo":"bar"}`, string(value))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, prefix+"/missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := prefix + "/overwrite"
		require.NoError(t, store.Set(ctx, key, []byte("v1")))
		require.NoError(t, store.Set(ctx, key, []byte("v2")))

		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(value))
	})

	t.Run("SetMulti", func(t *testing.T) {
		values := map[string][]byte{
			prefix + "/a": []byte("1"),
			prefix + "/b": []byte("2"),
		}
		require.NoError(t, store.SetMulti(ctx, values))

		for key, want := range values {
			got, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		key := prefix + "/deleted"
		require.NoError(t, store.Set(ctx, key, []byte("x")))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound, "Get after Delete should return ErrKeyNotFound")

		// Deleting again is a no-op.
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("List", func(t *testing.T) {
		k1 := prefix + "/list-1"
		k2 := prefix + "/list-2"
		require.NoError(t, store.Set(ctx, k1, []byte("1")))
		require.NoError(t, store.Set(ctx, k2, []byte("2")))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}

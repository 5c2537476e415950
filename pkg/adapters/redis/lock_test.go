package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocker(client, "flightdesk:"), mr
}

func TestLockAcquireAndRelease(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "conv-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("flightdesk:lock:conv-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("flightdesk:lock:conv-1"))
}

func TestLockBlocksSecondHolder(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "conv-1", time.Minute)
	require.NoError(t, err)

	// A second acquisition must not get through while the lock is held.
	shortCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(shortCtx, "conv-1", time.Minute)
	require.ErrorIs(t, err, ErrLockAcquire)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "conv-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLockKeysAreIndependent(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "conv-a", time.Minute)
	require.NoError(t, err)
	defer func() { _ = unlockA(ctx) }()

	unlockB, err := locker.Lock(ctx, "conv-b", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlockB(ctx))
}

func TestUnlockDoesNotReleaseForeignLock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "conv-1", time.Minute)
	require.NoError(t, err)

	// Simulate TTL expiry followed by another holder taking the lock.
	mr.FastForward(2 * time.Minute)
	unlock2, err := locker.Lock(ctx, "conv-1", time.Minute)
	require.NoError(t, err)

	// The stale holder's unlock must leave the new holder's lock intact.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("flightdesk:lock:conv-1"))

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("flightdesk:lock:conv-1"))
}

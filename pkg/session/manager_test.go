package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/ports"
)

func TestWithLockSerializesSameConversation(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	// Unsynchronized counter; only serialized execution keeps it exact.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "conv-1", func(ctx context.Context) error {
				counter++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestWithLockDropsIdleEntries(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.WithLock(context.Background(), "conv-1", func(ctx context.Context) error {
		return nil
	}))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks, "an idle conversation must not leak a lock entry")
}

func TestWithLockPropagatesError(t *testing.T) {
	m := NewManager()
	boom := errors.New("turn failed")

	err := m.WithLock(context.Background(), "conv-1", func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

// recordingLocker captures distributed lock traffic.
type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked int
	err      error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestWithLockUsesDistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	m := NewManager(WithLocker(locker))

	require.NoError(t, m.WithLock(context.Background(), "conv-1", func(ctx context.Context) error {
		return nil
	}))

	assert.Equal(t, []string{"conv-1"}, locker.locked)
	assert.Equal(t, 1, locker.unlocked, "the distributed lock must be released after the turn")
}

func TestWithLockFailsWhenDistributedLockUnavailable(t *testing.T) {
	boom := errors.New("redis down")
	m := NewManager(WithLocker(&recordingLocker{err: boom}))

	ran := false
	err := m.WithLock(context.Background(), "conv-1", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, ran, "the turn must not run without the distributed lock")
}

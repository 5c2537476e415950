package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a previously acquired lock.
type UnlockFunc func(ctx context.Context) error

// ConversationLocker coordinates turn processing across replicas so that two
// turns for the same conversation never run concurrently.
type ConversationLocker interface {
	// Lock blocks until the lock for key is held, the context is canceled,
	// or the TTL expires on the backend. The returned UnlockFunc MUST be
	// called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

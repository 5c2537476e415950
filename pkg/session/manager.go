// Package session serializes turn processing per conversation. Replies are
// only coherent when turns of one conversation run one at a time; turns of
// different conversations stay fully concurrent.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"flightdesk/internal/logging"
	"flightdesk/pkg/ports"
)

// lockTTL bounds how long a crashed replica can hold a distributed lock.
const lockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager hands out per-conversation locks. It uses reference counting to
// garbage collect entries of idle conversations.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.ConversationLocker // optional, for multi-replica setups
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking on top of the local mutexes.
func WithLocker(locker ports.ConversationLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for deferred unlock failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a conversation lock manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking.
func (m *Manager) acquire(conversationID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[conversationID]
	if !exists {
		entry = &lockEntry{}
		m.locks[conversationID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and drops the entry at zero.
func (m *Manager) release(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[conversationID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, conversationID)
	}
}

// WithLock executes fn while holding the conversation's lock: the local
// mutex always, plus the distributed lock when one is configured.
func (m *Manager) WithLock(ctx context.Context, conversationID string, fn func(context.Context) error) error {
	entry := m.acquire(conversationID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(conversationID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, conversationID, lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"conversation", conversationID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

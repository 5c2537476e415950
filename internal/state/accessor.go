// Package state implements the typed accessor layer over the durable
// key-value store. Values are read at most once per turn, writes are staged
// in memory, and everything staged is committed in a single flush after the
// turn router finishes.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"flightdesk/pkg/domain"
	"flightdesk/pkg/ports"
)

// Conversation is the per-turn view of one conversation's persisted state.
// It must not outlive the turn it was created for.
type Conversation struct {
	id     string
	store  ports.StateStore
	loaded map[string]json.RawMessage
	staged map[string]json.RawMessage
}

// NewConversation creates the state view for one turn of one conversation.
func NewConversation(id string, store ports.StateStore) *Conversation {
	return &Conversation{
		id:     id,
		store:  store,
		loaded: make(map[string]json.RawMessage),
		staged: make(map[string]json.RawMessage),
	}
}

// ID returns the conversation id this view is scoped to.
func (c *Conversation) ID() string {
	return c.id
}

func (c *Conversation) key(slot string) string {
	return c.id + "/" + slot
}

// raw returns the current bytes for a slot: staged write first, then the
// per-turn read cache, then the store. The second return value reports
// whether the slot exists at all.
func (c *Conversation) raw(ctx context.Context, slot string) (json.RawMessage, bool, error) {
	if v, ok := c.staged[slot]; ok {
		return v, true, nil
	}
	if v, ok := c.loaded[slot]; ok {
		return v, true, nil
	}
	data, err := c.store.Get(ctx, c.key(slot))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load slot %q: %w", slot, err)
	}
	c.loaded[slot] = data
	return data, true, nil
}

// stage records a pending write for a slot. Nothing reaches the store until
// Flush.
func (c *Conversation) stage(slot string, raw json.RawMessage) {
	c.staged[slot] = raw
}

// Dirty reports whether any writes are staged.
func (c *Conversation) Dirty() bool {
	return len(c.staged) > 0
}

// Flush commits all staged writes in one batch. A failed flush means the
// whole turn failed; none of the staged state may be considered committed.
func (c *Conversation) Flush(ctx context.Context) error {
	if len(c.staged) == 0 {
		return nil
	}
	values := make(map[string][]byte, len(c.staged))
	for slot, raw := range c.staged {
		values[c.key(slot)] = raw
	}
	if err := c.store.SetMulti(ctx, values); err != nil {
		return fmt.Errorf("flush conversation %s: %w", c.id, err)
	}
	c.staged = make(map[string]json.RawMessage)
	return nil
}

// Get returns the persisted value of a slot or, when the slot is absent, a
// fresh default from the factory. The default is NOT persisted; only an
// explicit Set stages a write.
func Get[T any](ctx context.Context, c *Conversation, slot string, factory func() T) (T, error) {
	var zero T
	raw, ok, err := c.raw(ctx, slot)
	if err != nil {
		return zero, err
	}
	if !ok {
		return factory(), nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	return value, nil
}

// Set stages a write for a slot. The write becomes durable on Flush.
func Set[T any](c *Conversation, slot string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", slot, err)
	}
	c.stage(slot, raw)
	return nil
}

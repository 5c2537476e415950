package ports

import "context"

// StateStore is the durable key-value boundary for conversation state.
// Keys are "<conversationID>/<slot>"; values are opaque encoded blobs.
type StateStore interface {
	// Get returns the stored value for a key.
	// Returns domain.ErrKeyNotFound if the key has no value.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes a single key.
	Set(ctx context.Context, key string, value []byte) error

	// SetMulti writes a batch of keys in one commit. The turn flush goes
	// through here so a conversation's staged writes land together.
	SetMulti(ctx context.Context, values map[string][]byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all stored keys.
	List(ctx context.Context) ([]string, error)
}

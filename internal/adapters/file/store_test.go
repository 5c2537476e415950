package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/domain"
	"flightdesk/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunStateStoreContract(t, New(t.TempDir()))
}

func TestStoreRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "conv-1/flightInfo", []byte(`{"a":1}`)))

	got, err := s.Get(ctx, "conv-1/flightInfo")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, s.Set(ctx, "conv-1/flightInfo", []byte(`{"a":2}`)))
	got, err = s.Get(ctx, "conv-1/flightInfo")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got, "a rewrite replaces the stored value")
}

func TestStoreEscapesSlashInKeys(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "conv-1/dialogStack", []byte("v")))

	// The key's slash must not create a subdirectory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDir())

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"conv-1/dialogStack"}, keys, "List must decode the escaped key")
}

func TestStoreGetMissingKey(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Get(context.Background(), "absent")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreSetMulti(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.SetMulti(ctx, map[string][]byte{
		"conv-1/a": []byte("1"),
		"conv-1/b": []byte("2"),
	}))

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"conv-1/a", "conv-1/b"}, keys)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreListOnMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))

	keys, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStoreLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	matches, err := filepath.Glob(filepath.Join(dir, "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, s.Set(ctx, "", []byte("v")))
	_, err := s.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, ""))
}

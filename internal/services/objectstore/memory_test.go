package objectstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "transcriptions/a.json", []byte(`{"x":1}`), "application/json"))

	data, err := store.Get(ctx, "transcriptions/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), data)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("one"), "text/plain"))
	require.NoError(t, store.Put(ctx, "k", []byte("two"), "text/plain"))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("original")
	require.NoError(t, store.Put(ctx, "k", buf, "text/plain"))

	// Mutating the caller's buffer must not affect the stored object
	buf[0] = 'X'

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}

func TestMemoryStoreHealthy(t *testing.T) {
	assert.NoError(t, NewMemoryStore().Healthy(context.Background()))
}

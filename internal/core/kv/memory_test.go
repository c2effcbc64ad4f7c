package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	require.NoError(t, store.Set(ctx, "test-key", payload{Name: "hello", Value: 42}))

	var got payload
	require.NoError(t, store.Get(ctx, "test-key", &got))
	assert.Equal(t, "hello", got.Name)
	assert.Equal(t, 42, got.Value)
}

func TestMemory_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var v string
	err := store.Get(ctx, "nonexistent", &v)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "key", "first"))
	require.NoError(t, store.Set(ctx, "key", "second"))

	var got string
	require.NoError(t, store.Get(ctx, "key", &got))
	assert.Equal(t, "second", got)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "key", "value"))
	require.NoError(t, store.Delete(ctx, "key"))

	has, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)

	// Deleting a missing key is fine.
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestMemory_ListKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "c", 3))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestMemory_GetMalformed(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	store.Corrupt("bad", []byte("{not json"))

	var v []string
	err := store.Get(ctx, "bad", &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

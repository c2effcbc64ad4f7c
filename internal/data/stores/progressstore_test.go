package stores

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/kv"
	"github.com/malla-dev/malla/internal/data/db"
)

func newTestProgressStore(t *testing.T) *ProgressStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewProgressStore(NewKVStore(database), zerolog.Nop())
}

func TestProgressStore_LoadEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestProgressStore(t)

	completed := store.Load(ctx)
	assert.Empty(t, completed)
}

func TestProgressStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestProgressStore(t)

	tests := []struct {
		name string
		set  curriculum.CompletedSet
	}{
		{name: "empty set", set: curriculum.NewCompletedSet()},
		{name: "single id", set: curriculum.NewCompletedSet("mat-101")},
		{name: "several ids", set: curriculum.NewCompletedSet("mat-101", "fis-100", "qui-110")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.Save(ctx, tt.set)
			got := store.Load(ctx)
			assert.Equal(t, tt.set.IDs(), got.IDs())
		})
	}
}

func TestProgressStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestProgressStore(t)

	store.Save(ctx, curriculum.NewCompletedSet("a", "b", "c"))
	store.Save(ctx, curriculum.NewCompletedSet("b"))

	assert.Equal(t, []string{"b"}, store.Load(ctx).IDs())
}

func TestProgressStore_MalformedDataLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	mem.Corrupt(CompletedKey, []byte(`{"not":"a list"`))

	store := NewProgressStore(mem, zerolog.Nop())
	assert.Empty(t, store.Load(ctx))
}

func TestProgressStore_ToleratesStaleIDs(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, CompletedKey, []string{"removed-from-catalog", "mat-101"}))

	store := NewProgressStore(mem, zerolog.Nop())
	completed := store.Load(ctx)

	// Stale IDs are tolerated on load; pruning them is not the
	// store's job.
	assert.True(t, completed.Has("removed-from-catalog"))
	assert.True(t, completed.Has("mat-101"))
}

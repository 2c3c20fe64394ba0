package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sluice/pkg/adapters/memory"
	"github.com/aretw0/sluice/pkg/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snap := &domain.Snapshot{
		Values:  map[string]any{"price": 42.5, "tags": []any{"a", "b"}},
		TakenAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, "run-1", snap))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, snap.Values, loaded.Values)

	// Caller mutation must not leak into the store.
	loaded.Values["price"] = 0.0
	again, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 42.5, again.Values["price"])
}

func TestStore_NotFound(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "run-1", &domain.Snapshot{Values: map[string]any{"k": 1}}))
	require.NoError(t, store.Delete(ctx, "run-1"))

	_, err := store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

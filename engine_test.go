package sluice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/pkg/adapters/memory"
	"github.com/aretw0/sluice/pkg/domain"
)

func TestEngine_Inspect(t *testing.T) {
	eng := sluice.New()
	root := eng.Root()
	root.Gate(func() bool { return false }, nil)
	child := root.NewChild()
	child.Watch(func(*sluice.Scope) any { return 1 }, nil, domain.EqualityStructural, "x")

	info := eng.Inspect()
	assert.True(t, info.Gated)
	require.NotNil(t, info.GateOpen)
	assert.False(t, *info.GateOpen)
	require.Len(t, info.Children, 1)
	require.Len(t, info.Children[0].Bindings, 1)
	assert.Equal(t, "x", info.Children[0].Bindings[0].Group)
	assert.True(t, info.Children[0].Bindings[0].Gated)
	assert.False(t, info.Children[0].Bindings[0].Seen)
}

func TestEngine_CheckpointRestore(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	build := func() (*sluice.Engine, *int, *map[string]any) {
		eng := sluice.New(sluice.WithSnapshotStore(store))
		value := map[string]any{"total": 10}
		fires := 0
		eng.Root().Watch(
			func(*sluice.Scope) any { return value },
			func(_, _ any, _ *sluice.Scope) { fires++ },
			domain.EqualityStructural, "cart",
		)
		return eng, &fires, &value
	}

	// First host: digest and checkpoint.
	eng1, fires1, _ := build()
	_, err := eng1.Digest()
	require.NoError(t, err)
	require.Equal(t, 1, *fires1)
	require.NoError(t, eng1.Checkpoint(ctx, "run-1"))

	// Second host, same bindings: restoring before the first digest
	// suppresses the first-fire for the unchanged value.
	eng2, fires2, _ := build()
	require.NoError(t, eng2.Restore(ctx, "run-1"))
	_, err = eng2.Digest()
	require.NoError(t, err)
	assert.Equal(t, 0, *fires2, "restored binding must not re-fire for an unchanged value")

	// Third host with a changed value fires normally.
	eng3, fires3, value3 := build()
	(*value3)["total"] = 99
	require.NoError(t, eng3.Restore(ctx, "run-1"))
	_, err = eng3.Digest()
	require.NoError(t, err)
	assert.Equal(t, 1, *fires3, "changed value must fire after restore")
}

func TestEngine_CheckpointWithoutStore(t *testing.T) {
	eng := sluice.New()
	err := eng.Checkpoint(context.Background(), "run-1")
	require.Error(t, err)

	err = eng.Restore(context.Background(), "run-1")
	require.Error(t, err)
}

func TestEngine_RestoreMissingSnapshot(t *testing.T) {
	eng := sluice.New(sluice.WithSnapshotStore(memory.NewStore()))
	err := eng.Restore(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

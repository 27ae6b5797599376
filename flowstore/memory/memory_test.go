package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcore/flow"
	"flowcore/flowstore"
)

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	rec := &flow.FlowRecord{AlgorithmMode: "data", GID: "flow-1"}
	require.NoError(t, s.Save(ctx, "flow-1", rec))

	loaded, err := s.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, rec.GID, loaded.GID)

	// mutating the returned record must not corrupt the store's copy
	loaded.GID = "mutated"
	reloaded, err := s.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "flow-1", reloaded.GID)
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.Load(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, flowstore.ErrNotFound)
}

func TestStore_Overwrite(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "flow-1", &flow.FlowRecord{AlgorithmMode: "data"}))
	require.NoError(t, s.Save(ctx, "flow-1", &flow.FlowRecord{AlgorithmMode: "exec"}))

	loaded, err := s.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "exec", loaded.AlgorithmMode)
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "b", &flow.FlowRecord{}))
	require.NoError(t, s.Save(ctx, "a", &flow.FlowRecord{}))

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "flow-1", &flow.FlowRecord{}))
	require.NoError(t, s.Delete(ctx, "flow-1"))

	_, err := s.Load(ctx, "flow-1")
	assert.ErrorIs(t, err, flowstore.ErrNotFound)

	// deleting something missing is a no-op, not an error
	assert.NoError(t, s.Delete(ctx, "never-existed"))
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcore/flow"
	"flowcore/flowstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flows.db")
	s, err := New(Options{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := &flow.FlowRecord{AlgorithmMode: "data", GID: "flow-1"}
	require.NoError(t, s.Save(ctx, "flow-1", rec))

	loaded, err := s.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, rec.GID, loaded.GID)
	assert.Equal(t, rec.AlgorithmMode, loaded.AlgorithmMode)
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Load(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, flowstore.ErrNotFound)
}

func TestStore_Overwrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "flow-1", &flow.FlowRecord{AlgorithmMode: "data"}))
	require.NoError(t, s.Save(ctx, "flow-1", &flow.FlowRecord{AlgorithmMode: "exec"}))

	loaded, err := s.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "exec", loaded.AlgorithmMode)
}

func TestStore_ListAndDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "b", &flow.FlowRecord{}))
	require.NoError(t, s.Save(ctx, "a", &flow.FlowRecord{}))

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, s.Delete(ctx, "a"))
	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

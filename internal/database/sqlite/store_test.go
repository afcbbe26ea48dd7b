package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootLoop_Go/internal/database"
	"github.com/osse101/LootLoop_Go/internal/save"
)

var _ save.Store = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "nested", "loot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestStore_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, ok, err := store.Get(ctx, "player:a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "player:a", []byte(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, "player:a", []byte(`{"v":2}`)))

	got, ok, err := store.Get(ctx, "player:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, k := range []string{"player:b", "player:a", "meta:x"} {
		require.NoError(t, store.Put(ctx, k, []byte("{}")))
	}

	keys, err := store.Keys(ctx, save.KeyPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"player:a", "player:b"}, keys)

	require.NoError(t, store.Delete(ctx, "player:a"))
	require.NoError(t, store.Delete(ctx, "player:missing"))
	keys, err = store.Keys(ctx, save.KeyPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"player:b"}, keys)
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.Put(context.Background(), " ", []byte("{}")))
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "loot.db")

	db, err := database.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewStore(db).Put(ctx, "player:p1", []byte(`{"version":1}`)))
	require.NoError(t, db.Close())

	db, err = database.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, ok, err := NewStore(db).Get(ctx, "player:p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":1}`, string(got))
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	_, err := database.Open(context.Background(), "  ")
	assert.Error(t, err)
}

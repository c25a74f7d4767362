package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runKVContract exercises the behavior every adapter must share.
func runKVContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "user", `{"id":"123"}`))
	require.NoError(t, kv.Set(ctx, "userType", "farmer"))

	v, err := kv.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"123"}`, v)

	// Overwrite wins.
	require.NoError(t, kv.Set(ctx, "userType", "customer"))
	v, err = kv.Get(ctx, "userType")
	require.NoError(t, err)
	assert.Equal(t, "customer", v)

	require.NoError(t, kv.Delete(ctx, "user"))
	_, err = kv.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, kv.Delete(ctx, "user"))
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	runKVContract(t, kv)
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()

	runKVContract(t, kv)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.db")

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "userType", "farmer"))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(ctx, "userType")
	require.NoError(t, err)
	assert.Equal(t, "farmer", v)
}

func TestRedisKV(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	kv, err := NewRedis(mr.Addr(), "")
	require.NoError(t, err)
	defer kv.Close()

	runKVContract(t, kv)
}

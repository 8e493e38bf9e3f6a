package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "outlay.db"))
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	_, err = kv.Get(ctx, "expenses-data")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Put(ctx, "expenses-data", []byte(`[]`)))
	got, err := kv.Get(ctx, "expenses-data")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	// Put replaces wholesale.
	require.NoError(t, kv.Put(ctx, "expenses-data", []byte(`[{"id":"a"}]`)))
	got, err = kv.Get(ctx, "expenses-data")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)

	require.NoError(t, kv.Delete(ctx, "expenses-data"))
	_, err = kv.Get(ctx, "expenses-data")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Put(ctx, "k", []byte("v1")))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Returned slice is a copy; mutating it must not leak back.
	got[0] = 'x'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

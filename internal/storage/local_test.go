package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "pets/abc.png", []byte("data"), "image/png"))
	data, err := os.ReadFile(filepath.Join(dir, "pets", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	require.NoError(t, store.Delete(ctx, "pets/abc.png"))
	_, err = os.Stat(filepath.Join(dir, "pets", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "pets/abc.png"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	assert.Error(t, store.Put(ctx, "../escape.png", []byte("x"), "image/png"))
	assert.Error(t, store.Put(ctx, "/etc/escape.png", []byte("x"), "image/png"))
	assert.Error(t, store.Delete(ctx, "../escape.png"))
}

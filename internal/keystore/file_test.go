package keystore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissingReturnsErrKeyNotFound(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "vault.key"))

	_, err := s.Read(context.Background())
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStore_WriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "vault.key")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, []byte("abc")))

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestFileStore_WriteDoesNotReplaceExisting(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "vault.key"))
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, []byte("first")))
	require.Error(t, s.Write(ctx, []byte("second")))

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestFileStore_ReadDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	_, err := s.Read(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrKeyNotFound))
}

func TestFileStore_Location(t *testing.T) {
	assert.Equal(t, "file://data/vault.key", NewFileStore("data/vault.key").Location())
}

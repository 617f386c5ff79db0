package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestNewStorage_CreatesDirectory(t *testing.T) {
	base := t.TempDir()

	_, err := NewStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "products"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStorage_EmptyBasePath(t *testing.T) {
	_, err := NewStorage("")
	require.Error(t, err)
}

func TestNewStorageWithSubdir(t *testing.T) {
	base := t.TempDir()

	storage, err := NewStorageWithSubdir(base, "uploads")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "uploads", "x.jpg"), storage.Path("x"))
}

func TestStorage_SaveAndGet(t *testing.T) {
	storage := setupTestStorage(t)

	data := []byte("fake image bytes")
	require.NoError(t, storage.Save("prod-1", data))

	got, err := storage.Get("prod-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStorage_Save_Validation(t *testing.T) {
	storage := setupTestStorage(t)

	assert.Error(t, storage.Save("", []byte("data")))
	assert.Error(t, storage.Save("prod-1", nil))
}

func TestStorage_RejectsTraversalIDs(t *testing.T) {
	storage := setupTestStorage(t)

	for _, id := range []string{"..", ".", "../../etc/passwd", "a/b", `a\b`} {
		err := storage.Save(id, []byte("data"))
		require.ErrorIs(t, err, ErrInvalidID, "id %q", id)

		_, err = storage.Get(id)
		require.ErrorIs(t, err, ErrInvalidID, "id %q", id)

		assert.False(t, storage.Exists(id), "id %q", id)
	}
}

func TestStorage_Get_NotFound(t *testing.T) {
	storage := setupTestStorage(t)

	_, err := storage.Get("missing")
	require.Error(t, err)
}

func TestStorage_Exists(t *testing.T) {
	storage := setupTestStorage(t)

	assert.False(t, storage.Exists("prod-1"))

	require.NoError(t, storage.Save("prod-1", []byte("data")))
	assert.True(t, storage.Exists("prod-1"))

	assert.False(t, storage.Exists(""))
}

func TestStorage_Delete_Idempotent(t *testing.T) {
	storage := setupTestStorage(t)

	require.NoError(t, storage.Save("prod-1", []byte("data")))
	require.NoError(t, storage.Delete("prod-1"))
	assert.False(t, storage.Exists("prod-1"))

	// Deleting again is not an error.
	require.NoError(t, storage.Delete("prod-1"))
}

func TestStorage_Hash_Stable(t *testing.T) {
	storage := setupTestStorage(t)

	require.NoError(t, storage.Save("prod-1", []byte("data")))

	first, err := storage.Hash("prod-1")
	require.NoError(t, err)
	require.Len(t, first, 64) // hex sha256

	second, err := storage.Hash("prod-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

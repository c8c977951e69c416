package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("receipts/tiket.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "receipts/tiket.pdf", name)

	file, err := store.Open(name)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), content)

	require.NoError(t, store.Delete(name))
	_, err = store.Open(name)
	assert.Error(t, err)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(name))
}

func TestLocalStorageSaveStream(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.SaveStream("stream.pdf", bytes.NewBufferString("streamed content"))
	require.NoError(t, err)

	file, err := store.Open(name)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, "streamed content", string(content))
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("old.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("new.pdf", []byte("new"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.pdf"), past, past))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.pdf"}, deleted)

	_, err = store.Open("new.pdf")
	assert.NoError(t, err)
}

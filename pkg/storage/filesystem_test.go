package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveReadDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("history/checklist-salvos.json", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "history/checklist-salvos.json", name)

	data, err := store.Read(name)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	f, err := store.Open(name)
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, `[]`, string(content))

	require.NoError(t, store.Delete(name))
	require.NoError(t, store.Delete(name))
	_, err = store.Read(name)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../escape.txt", []byte("x"))
	assert.ErrorIs(t, err, ErrOutsideBase)
	_, err = store.Read("../../etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideBase)
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("exports/old.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("exports/new.pdf", []byte("new"))
	require.NoError(t, err)
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(store.Path("exports/old.pdf"), past, past))

	deleted, err := store.CleanupOlderThan("exports", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/old.pdf"}, deleted)

	_, err = store.Read("exports/new.pdf")
	assert.NoError(t, err)

	deleted, err = store.CleanupOlderThan("missing", time.Hour)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

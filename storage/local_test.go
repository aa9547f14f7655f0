package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveOpenRemove(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save("abc_resume.pdf", strings.NewReader("%PDF-1.4")))

	f, err := store.Open("abc_resume.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "%PDF-1.4", string(data))

	removed, err := store.Remove("abc_resume.pdf")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove("abc_resume.pdf")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.Open("abc_resume.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStore_RejectsPaths(t *testing.T) {
	store := newStore(t)
	outside := filepath.Join(filepath.Dir(store.Dir()), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	for _, name := range []string{"../secret.txt", "a/b.pdf", "..", ".", ""} {
		_, err := store.Open(name)
		assert.Error(t, err, name)
		assert.Error(t, store.Save(name, strings.NewReader("x")), name)
	}

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))
}

func TestLocalStore_FindByPrefix(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("bbb_two.pdf", strings.NewReader("2")))
	require.NoError(t, store.Save("aaa_one.pdf", strings.NewReader("1")))
	require.NoError(t, store.Save("aaa_zwei.pdf", strings.NewReader("1b")))

	name, err := store.FindByPrefix("aaa")
	require.NoError(t, err)
	assert.Equal(t, "aaa_one.pdf", name)

	_, err = store.FindByPrefix("ccc")
	assert.ErrorIs(t, err, ErrNotExist)

	_, err = store.FindByPrefix("../")
	assert.ErrorIs(t, err, ErrNotExist)
}

package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/session"
)

func initTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorageRepository(t *testing.T) {
	storage := NewStorageRepository(initTestDB(t))

	_, ok, err := storage.Get(ScopeLocal, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(ScopeLocal, "k", "v1"))
	require.NoError(t, storage.Set(ScopeLocal, "k", "v2"))
	require.NoError(t, storage.Set(ScopeSession, "k", "s"))

	value, ok, err := storage.Get(ScopeLocal, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, storage.ClearScope(ScopeSession))
	_, ok, err = storage.Get(ScopeSession, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = storage.Get(ScopeLocal, "k")
	require.NoError(t, err)
	assert.True(t, ok, "clearing session scope must keep local values")
}

func TestTokenRepositoryClear(t *testing.T) {
	storage := NewStorageRepository(initTestDB(t))
	var store session.TokenStore = NewTokenRepository(storage)

	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SetUserName("Ada"))
	require.NoError(t, storage.Set(ScopeLocal, KeyTheme, "dark"))

	require.NoError(t, store.Clear())

	_, ok, err := store.GetToken()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.UserName()
	require.NoError(t, err)
	assert.False(t, ok)

	theme, err := NewPreferenceRepository(storage).Theme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)
}

func TestRedirectRepositoryPop(t *testing.T) {
	redirects := NewRedirectRepository(NewStorageRepository(initTestDB(t)))

	_, ok, err := redirects.Pop()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, redirects.Save("/dashboard"))
	path, ok, err := redirects.Pop()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/dashboard", path)

	_, ok, err = redirects.Pop()
	require.NoError(t, err)
	assert.False(t, ok)
}

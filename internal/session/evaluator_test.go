package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/todo-client/internal/testhelpers"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEvaluatorIsAuthenticated(t *testing.T) {
	store := NewMemoryStore()
	e := NewEvaluator(store, fixedClock(now))

	assert.False(t, e.IsAuthenticated(), "empty store")

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(time.Hour))))
	assert.True(t, e.IsAuthenticated())

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(-time.Second))))
	assert.False(t, e.IsAuthenticated(), "expired token still stored")

	_, ok, err := store.GetToken()
	require.NoError(t, err)
	assert.True(t, ok, "evaluator must not clear the store")
}

func TestEvaluatorExpiresIn(t *testing.T) {
	store := NewMemoryStore()
	e := NewEvaluator(store, fixedClock(now))

	_, ok := e.ExpiresIn()
	assert.False(t, ok)
	assert.True(t, e.ExpiringSoon(DefaultExpiryWarning), "no session counts as expiring")

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(time.Hour))))
	left, ok := e.ExpiresIn()
	require.True(t, ok)
	assert.Equal(t, time.Hour, left)
	assert.False(t, e.ExpiringSoon(DefaultExpiryWarning))

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(2*time.Minute))))
	assert.True(t, e.ExpiringSoon(DefaultExpiryWarning))
}

func TestEvaluatorUserID(t *testing.T) {
	store := NewMemoryStore()
	e := NewEvaluator(store, fixedClock(now))

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(time.Hour))))
	id, ok := e.UserID()
	require.True(t, ok)
	assert.Equal(t, "u1", id)

	require.NoError(t, store.SetToken(testhelpers.TokenExpiringAt(t, now.Add(-time.Hour))))
	_, ok = e.UserID()
	assert.False(t, ok)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetToken("t"))
	require.NoError(t, store.SetUserName("Ada"))

	require.NoError(t, store.Clear())

	_, ok, _ := store.GetToken()
	assert.False(t, ok)
	_, ok, _ = store.UserName()
	assert.False(t, ok)
}

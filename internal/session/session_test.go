package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk.com/taskdesk/internal/store"
)

type failingStore struct {
	store.KeyValueStore
}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSession_PersistsToken(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	s, err := New(ctx, kv)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.SetToken(ctx, "abc"))
	assert.True(t, s.IsAuthenticated())

	v, err := kv.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	restored, err := New(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, "abc", restored.Token())
}

func TestSession_LogoutRemovesToken(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	s, err := New(ctx, kv)
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "abc"))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSession_StoreFailure(t *testing.T) {
	_, err := New(context.Background(), failingStore{})
	assert.Error(t, err)
}

func TestSession_Claims(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, store.NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, "", s.Username())
	assert.False(t, s.Expired(time.Now()))

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.SetToken(ctx, signed(t, jwt.MapClaims{"sub": "alice", "exp": exp.Unix()})))

	assert.Equal(t, "alice", s.Username())
	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
	assert.False(t, s.Expired(exp.Add(-time.Minute)))
	assert.True(t, s.Expired(exp))

	require.NoError(t, s.SetToken(ctx, "not-a-jwt"))
	assert.Equal(t, "", s.Username())
}

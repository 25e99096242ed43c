package store

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRedisStore(t *testing.T) (*RedisStore, *mock.Client) {
	t.Helper()
	client := mock.NewClient(gomock.NewController(t))
	return NewRedisStore(client, "taskdesk:"), client
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, client := newRedisStore(t)

	gomock.InOrder(
		client.EXPECT().Do(ctx, mock.Match("SET", "taskdesk:token", "abc")).Return(mock.Result(mock.RedisString("OK"))),
		client.EXPECT().Do(ctx, mock.Match("GET", "taskdesk:token")).Return(mock.Result(mock.RedisString("abc"))),
		client.EXPECT().Do(ctx, mock.Match("DEL", "taskdesk:token")).Return(mock.Result(mock.RedisInt64(1))),
	)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
	require.NoError(t, s.Delete(ctx, "token"))
}

func TestRedisStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	s, client := newRedisStore(t)

	client.EXPECT().Do(ctx, mock.Match("GET", "taskdesk:token")).Return(mock.Result(mock.RedisNil()))

	_, err := s.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DeleteAbsentKey(t *testing.T) {
	ctx := context.Background()
	s, client := newRedisStore(t)

	client.EXPECT().Do(ctx, mock.Match("DEL", "taskdesk:token")).Return(mock.Result(mock.RedisInt64(0)))

	assert.NoError(t, s.Delete(ctx, "token"))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	ctx := context.Background()
	s, client := newRedisStore(t)
	down := errors.New("connection refused")

	client.EXPECT().Do(ctx, mock.Match("GET", "taskdesk:token")).Return(mock.ErrorResult(down))

	_, err := s.Get(ctx, "token")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrNotFound)
}

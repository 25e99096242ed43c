package store

import (
	"context"

	"github.com/redis/rueidis"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisStore(client rueidis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	cmd := r.client.B().Get().Key(r.key(key)).Build()
	value, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	cmd := r.client.B().Set().Key(r.key(key)).Value(value).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.key(key)).Build()
	return r.client.Do(ctx, cmd).Error()
}

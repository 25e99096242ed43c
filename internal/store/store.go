// Package store persists small client-side values such as the session
// token, the way a browser keeps them in local storage.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type KeyValueStore interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// Delete succeeds when the key is already absent.
	Delete(ctx context.Context, key string) error
}

// Package storage defines the durable key/value contract that mirrors the
// storefront state, in the shape of browser local storage: string keys and
// string (JSON) values.
package storage

import (
	"context"
	"errors"
)

// Logical keys.
const (
	CartKey      = "cart"
	FavoritesKey = "favorites"
	AuthKey      = "auth"
)

// ErrQuotaExceeded is returned by Set when the backend refuses to grow.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a durable string key/value store.
type Store interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

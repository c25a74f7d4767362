// Package storage is the durable local storage the session store persists
// into: a small key/value surface standing in for the browser's localStorage.
// Access is confined to one logical owner, so adapters only need enough
// locking to stay safe under Go's memory model.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for an absent key.
var ErrKeyNotFound = errors.New("key not found")

// KV is the durable storage port. Implementations must treat Delete of an
// absent key as a no-op.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

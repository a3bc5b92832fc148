// Package kv provides key-value persistence areas holding whole serialized
// aggregates under fixed string keys.
package kv

import "context"

// Area stores opaque values by key.
// Get returns nil, nil for a key that was never written.
type Area interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

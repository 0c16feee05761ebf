// Package cache stores encoded search responses keyed by a request digest.
// Search results are a pure function of the dataset and the request, so a
// cached answer is valid until the dataset changes; TTL bounds that window.
package cache

import (
	"context"
	"errors"
)

// ErrBackend wraps failures of the underlying store.
var ErrBackend = errors.New("cache: backend failure")

// Store is a byte-level key/value cache.
type Store interface {
	// Get returns the value for key. found is false on a miss.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Nop is a Store that never holds anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (Nop) Set(context.Context, string, []byte) error { return nil }

// Package storage provides the response cache consumed by the Eventor
// client.
package storage

import "context"

// Cache stores raw response bodies keyed by a request fingerprint.
// This abstraction keeps the client indifferent to whether and how
// responses are cached.
type Cache interface {
	// Get returns the cached body for a fingerprint. A miss is
	// (_, false, nil), not an error.
	Get(ctx context.Context, fingerprint uint64) (string, bool, error)

	// Put stores a response body under a fingerprint, replacing any
	// previous one.
	Put(ctx context.Context, fingerprint uint64, body string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Nop is a Cache that caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, uint64) (string, bool, error) { return "", false, nil }
func (Nop) Put(context.Context, uint64, string) error         { return nil }
func (Nop) Close() error                                      { return nil }

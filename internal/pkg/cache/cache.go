// Package cache is the time-expiring result store keyed by claim
// fingerprint. Values are opaque serialized bytes so the store never
// depends on the verdict shape.
package cache

import "context"

// Store is the result cache contract: insert-on-miss writes, read-only
// hits, entries invisible once older than the TTL.
type Store interface {
	// Get returns the cached value for key, or found=false on a miss
	// (including entries that have outlived the TTL).
	Get(ctx context.Context, key string) (val []byte, found bool, err error)
	// Put stores val under key. The last writer for a key wins.
	Put(ctx context.Context, key string, val []byte) error
}

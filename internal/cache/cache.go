// Package cache holds the per-source raw-review cache consulted by
// collectors before any live fetch. An empty cached slice is a complete
// "no reviews found" result; whether a collector re-fetches on an empty
// hit is the collector's policy, not the cache's.
package cache

import "context"

type RawCache interface {
	// Get returns the cached reviews for one source+model and whether the
	// entry exists. A corrupted entry is reported as a miss.
	Get(ctx context.Context, source, model string) ([]string, bool, error)
	Set(ctx context.Context, source, model string, reviews []string) error
}

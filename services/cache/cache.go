// Package cache provides the cooldown cache that blocks a site's
// fetches for a window after the site rate-limits us.
package cache

import (
	"time"
)

// CacheService represents a generic expiring cache
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

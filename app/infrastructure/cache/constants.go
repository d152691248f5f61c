package cache

const (
	// CacheVersion is the API version prefix for cache keys.
	CacheVersion = "v1"

	// SessionByIDKey is the cache key template for login sessions by session ID.
	SessionByIDKey = CacheVersion + ":session:%s"
)

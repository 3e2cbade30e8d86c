// Package cache provides Docstore response caching with a Redis backend.
//
// The cache manager implements expires-driven response caching:
//
// - TTL derived from the response expires header
// - ETag support for conditional requests (If-None-Match)
// - Last-Modified support (If-Modified-Since)
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	// Create cache key
//	key := cache.Key{
//		Endpoint:    "/v1/databases/main/documents/orders",
//		QueryParams: url.Values{"pageSize": []string{"50"}},
//	}
//
//	// Get from cache
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from the API
//	}
//
// # HTTP Response Caching
//
//	// Convert HTTP response to cache entry
//	entry, err := cache.ResponseToEntry(resp)
//	if err != nil {
//		return err
//	}
//
//	// Store in cache
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Conditional Requests
//
//	// Check if a conditional request is possible
//	if cache.CanRevalidate(entry) {
//		cache.AddRevalidationHeaders(req, entry)
//		// The server returns 304 if the entry is still fresh
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - docstore_cache_hits_total{layer="redis"} - Cache hits
//   - docstore_cache_misses_total - Cache misses
//   - docstore_cache_size_bytes{layer="redis"} - Cache size
//   - docstore_304_responses_total - Revalidation successes
//   - docstore_conditional_requests_total - Conditional requests sent
//   - docstore_cache_errors_total{operation} - Cache operation errors
package cache

package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached Docstore API response.
type Key struct {
	// Endpoint is the API path (e.g. "/v1/databases/main/documents/orders")
	Endpoint string

	// QueryParams are the request's query parameters
	QueryParams url.Values

	// Database scopes the key for multi-database deployments (empty for
	// the default database)
	Database string
}

// String generates a deterministic cache key string.
// Format: docstore:endpoint:query1=val1:query2=val2:db=main
//
// Example:
//
//	docstore:v1/databases/main/documents/orders:pageSize=50
func (k Key) String() string {
	parts := []string{"docstore"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism.
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	if k.Database != "" {
		parts = append(parts, fmt.Sprintf("db=%s", k.Database))
	}

	return strings.Join(parts, ":")
}

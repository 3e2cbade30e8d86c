// Package testutil provides testing utilities for the Docstore client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockDocstore is a configurable mock Docstore API server for testing.
type MockDocstore struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount     int
	ConditionalCount int
	PageTokensSeen   []string
	LastHeader       http.Header
}

// NewMockDocstore creates a new mock Docstore server.
func NewMockDocstore() *MockDocstore {
	mock := &MockDocstore{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastHeader = r.Header.Clone()

		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.ConditionalCount++
		}

		if token := pageToken(r); token != "" {
			mock.PageTokensSeen = append(mock.PageTokensSeen, token)
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// pageToken extracts the page token from the query string of GET listing
// requests. POST bodies carry their token inside the JSON payload, so
// custom POST handlers track tokens themselves.
func pageToken(r *http.Request) string {
	return r.URL.Query().Get("pageToken")
}

// URL returns the mock server URL.
func (m *MockDocstore) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockDocstore) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockDocstore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.ConditionalCount = 0
	m.PageTokensSeen = nil
	m.LastHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockDocstore) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockDocstore) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPaginatedCollection configures a token-paginated document listing
// for a collection. pages maps a page token to the JSON body served for
// it; the empty token is the first page. Each body is expected to carry
// its own nextPageToken field pointing at the following key.
func (m *MockDocstore) SetPaginatedCollection(database, collection string, pages map[string]string) {
	path := fmt.Sprintf("/v1/databases/%s/documents/%s", database, collection)
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("pageToken")]
		if !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid page token"}`))
			return
		}

		setRateLimitHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockDocstore) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPageTokensSeen returns the page tokens of all GET listing requests,
// in arrival order.
func (m *MockDocstore) GetPageTokensSeen() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.PageTokensSeen...)
}

// defaultHandler provides default API-like responses.
func (m *MockDocstore) defaultHandler(w http.ResponseWriter, r *http.Request) {
	setRateLimitHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.Header.Get("If-None-Match") != "" {
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", `"default-etag"`)
	w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"documents": [], "nextPageToken": ""}`))
}

func setRateLimitHeaders(h http.Header) {
	h.Set("X-RateLimit-Remaining", "100")
	h.Set("X-RateLimit-Reset", "60")
}

// NewHealthyResponse creates a standard 200 OK response with rate limit headers.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"X-RateLimit-Remaining": "100",
			"X-RateLimit-Reset":     "60",
			"ETag":                  `"test-etag-123"`,
			"Expires":               time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
			"Content-Type":          "application/json; charset=utf-8",
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "rate limit exceeded"}`,
		Headers: map[string]string{
			"X-RateLimit-Remaining": "5",
			"X-RateLimit-Reset":     "30",
			"Content-Type":          "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers: map[string]string{
			"X-RateLimit-Remaining": "95",
			"X-RateLimit-Reset":     "60",
			"Content-Type":          "application/json; charset=utf-8",
		},
	}
}

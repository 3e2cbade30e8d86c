package cache

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestResponseToEntry(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	lastMod := time.Now().Add(-1 * time.Hour).UTC().Truncate(time.Second)

	resp := &http.Response{
		StatusCode: 200,
		Header: http.Header{
			"Content-Type":  []string{"application/json"},
			"Etag":          []string{`"abc123"`},
			"Expires":       []string{expires.Format(http.TimeFormat)},
			"Last-Modified": []string{lastMod.Format(http.TimeFormat)},
		},
		Body: io.NopCloser(bytes.NewReader([]byte(`{"documents": []}`))),
	}

	entry, err := ResponseToEntry(resp)
	if err != nil {
		t.Fatalf("ResponseToEntry failed: %v", err)
	}

	if string(entry.Data) != `{"documents": []}` {
		t.Errorf("Data = %s, want body", entry.Data)
	}
	if entry.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want %q", entry.ETag, `"abc123"`)
	}
	if entry.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}
	if !entry.Expires.Equal(expires) {
		t.Errorf("Expires = %v, want %v", entry.Expires, expires)
	}
	if !entry.LastModified.Equal(lastMod) {
		t.Errorf("LastModified = %v, want %v", entry.LastModified, lastMod)
	}

	// Body must still be readable by the caller.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading restored body failed: %v", err)
	}
	if string(body) != `{"documents": []}` {
		t.Errorf("Restored body = %s, want original", body)
	}
}

func TestResponseToEntry_NilResponse(t *testing.T) {
	_, err := ResponseToEntry(nil)
	if err == nil {
		t.Error("Expected error for nil response")
	}
}

func TestResponseToEntry_NoExpiresHeader(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte(`{}`))),
	}

	entry, err := ResponseToEntry(resp)
	if err != nil {
		t.Fatalf("ResponseToEntry failed: %v", err)
	}

	// Should fall back to DefaultTTL.
	ttl := entry.TTL()
	if ttl < DefaultTTL-10*time.Second || ttl > DefaultTTL {
		t.Errorf("TTL = %v, want ~%v", ttl, DefaultTTL)
	}
}

func TestEntryToResponse(t *testing.T) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("ETag", `"abc123"`)

	entry := &Entry{
		StatusCode: 200,
		Headers:    headers,
		Data:       []byte(`{"test": "data"}`),
	}

	resp := EntryToResponse(entry)

	if resp.StatusCode != entry.StatusCode {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, entry.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", resp.Header.Get("Content-Type"))
	}
	if resp.Header.Get("ETag") != `"abc123"` {
		t.Errorf("ETag = %q, want %q", resp.Header.Get("ETag"), `"abc123"`)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading body failed: %v", err)
	}
	if string(body) != string(entry.Data) {
		t.Errorf("Body = %s, want %s", body, entry.Data)
	}
}

func TestCanRevalidate(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
		want  bool
	}{
		{
			name:  "nil entry",
			entry: nil,
			want:  false,
		},
		{
			name:  "entry with ETag",
			entry: &Entry{ETag: `"abc123"`},
			want:  true,
		},
		{
			name:  "entry with Last-Modified",
			entry: &Entry{LastModified: time.Now().Add(-1 * time.Hour)},
			want:  true,
		},
		{
			name:  "entry without validators",
			entry: &Entry{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRevalidate(tt.entry); got != tt.want {
				t.Errorf("CanRevalidate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddRevalidationHeaders(t *testing.T) {
	t.Run("prefers ETag", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "http://example.com/test", nil)
		entry := &Entry{
			ETag:         `"abc123"`,
			LastModified: time.Now().Add(-1 * time.Hour),
		}

		AddRevalidationHeaders(req, entry)

		if got := req.Header.Get("If-None-Match"); got != `"abc123"` {
			t.Errorf("If-None-Match = %q, want %q", got, `"abc123"`)
		}
		if req.Header.Get("If-Modified-Since") != "" {
			t.Error("If-Modified-Since should not be set when ETag is available")
		}
	})

	t.Run("falls back to Last-Modified", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "http://example.com/test", nil)
		lastMod := time.Now().Add(-1 * time.Hour).UTC().Truncate(time.Second)
		entry := &Entry{LastModified: lastMod}

		AddRevalidationHeaders(req, entry)

		if got := req.Header.Get("If-Modified-Since"); got != lastMod.Format(http.TimeFormat) {
			t.Errorf("If-Modified-Since = %q, want %q", got, lastMod.Format(http.TimeFormat))
		}
	})

	t.Run("nil entry is a no-op", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "http://example.com/test", nil)
		AddRevalidationHeaders(req, nil)

		if req.Header.Get("If-None-Match") != "" || req.Header.Get("If-Modified-Since") != "" {
			t.Error("No headers should be set for nil entry")
		}
	})
}

func TestParseExpires(t *testing.T) {
	t.Run("valid future expires", func(t *testing.T) {
		expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
		headers := http.Header{}
		headers.Set("Expires", expires.Format(http.TimeFormat))

		got := parseExpires(headers)
		if !got.Equal(expires) {
			t.Errorf("parseExpires() = %v, want %v", got, expires)
		}
	})

	t.Run("past expires clamps to now", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("Expires", time.Now().Add(-10*time.Minute).Format(http.TimeFormat))

		got := parseExpires(headers)
		if time.Until(got) > time.Second {
			t.Errorf("parseExpires() = %v, want ~now", got)
		}
	})

	t.Run("invalid expires falls back to default TTL", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("Expires", "not a date")

		got := parseExpires(headers)
		ttl := time.Until(got)
		if ttl < DefaultTTL-10*time.Second || ttl > DefaultTTL {
			t.Errorf("fallback TTL = %v, want ~%v", ttl, DefaultTTL)
		}
	})
}

package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wanderpost/wanderpost/internal/config"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewFetcher(&config.Config{
		UnsplashURL:       server.URL,
		UnsplashAccessKey: "test-key",
	})
}

func searchResponse(results ...map[string]any) []byte {
	body, _ := json.Marshal(map[string]any{"results": results})
	return body
}

func result(url, alt string) map[string]any {
	return map[string]any{
		"urls":            map[string]string{"regular": url},
		"alt_description": alt,
	}
}

func TestSearchAlwaysReturnsThree(t *testing.T) {
	tests := []struct {
		name         string
		results      []map[string]any
		wantReal     int
		wantCaptions []string
	}{
		{
			name:         "zero results degrade to placeholders",
			results:      nil,
			wantReal:     0,
			wantCaptions: []string{"No image available", "No image available", "No image available"},
		},
		{
			name:         "one result is padded",
			results:      []map[string]any{result("https://img/1", "old town at dusk")},
			wantReal:     1,
			wantCaptions: []string{"old town at dusk", "No image available", "No image available"},
		},
		{
			name: "three results pass through",
			results: []map[string]any{
				result("https://img/1", "one"),
				result("https://img/2", "two"),
				result("https://img/3", "three"),
			},
			wantReal:     3,
			wantCaptions: []string{"one", "two", "three"},
		},
		{
			name: "extra results are truncated",
			results: []map[string]any{
				result("https://img/1", "one"),
				result("https://img/2", "two"),
				result("https://img/3", "three"),
				result("https://img/4", "four"),
			},
			wantReal:     3,
			wantCaptions: []string{"one", "two", "three"},
		},
		{
			name:         "missing alt text falls back to sentinel caption",
			results:      []map[string]any{result("https://img/1", "")},
			wantReal:     1,
			wantCaptions: []string{"No caption available", "No image available", "No image available"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
					t.Errorf("Unexpected Authorization header: %s", got)
				}
				if got := r.URL.Query().Get("per_page"); got != "3" {
					t.Errorf("Expected per_page=3, got %s", got)
				}
				if _, err := w.Write(searchResponse(tt.results...)); err != nil {
					t.Fatal(err)
				}
			})

			set, err := fetcher.Search(context.Background(), "Prague")
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}

			if len(set) != DefaultCount {
				t.Fatalf("Expected exactly %d images, got %d", DefaultCount, len(set))
			}

			for i, img := range set {
				if img.Caption != tt.wantCaptions[i] {
					t.Errorf("Image %d caption: got %q, want %q", i, img.Caption, tt.wantCaptions[i])
				}
			}

			for i := tt.wantReal; i < DefaultCount; i++ {
				if set[i].URL != PlaceholderURL {
					t.Errorf("Image %d: expected placeholder URL, got %s", i, set[i].URL)
				}
			}
		})
	}
}

func TestSearchProviderFailure(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := fetcher.Search(context.Background(), "Prague"); err == nil {
		t.Fatal("Expected error on non-200 provider response")
	}
}

func TestSearchQueryEscaping(t *testing.T) {
	var gotQuery string
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		if _, err := w.Write(searchResponse()); err != nil {
			t.Fatal(err)
		}
	})

	if _, err := fetcher.Search(context.Background(), "Rio de Janeiro"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "Rio de Janeiro" {
		t.Errorf("Expected query to round-trip, got %q", gotQuery)
	}
}

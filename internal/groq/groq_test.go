package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wanderpost/wanderpost/internal/config"
	"github.com/wanderpost/wanderpost/internal/providers"
)

func TestComplete(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gq-key" {
			t.Errorf("Unexpected Authorization header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		reply := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "1. Charles Bridge | Walk it at sunrise."}},
			},
		}
		if err := json.NewEncoder(w).Encode(reply); err != nil {
			t.Fatal(err)
		}
	}))
	defer server.Close()

	provider := New(&config.Config{GroqURL: server.URL, GroqAPIKey: "gq-key"})

	reply, err := provider.Complete(context.Background(), providers.Config{
		Temperature: 0.5,
		Prompt:      "name the landmarks",
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "1. Charles Bridge | Walk it at sunrise." {
		t.Errorf("Unexpected reply: %q", reply)
	}

	if gotBody["model"] != DefaultModel {
		t.Errorf("Expected default model %s, got %v", DefaultModel, gotBody["model"])
	}
	if gotBody["temperature"] != 0.5 {
		t.Errorf("Expected temperature 0.5, got %v", gotBody["temperature"])
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"choices":[]}`)); err != nil {
			t.Fatal(err)
		}
	}))
	defer server.Close()

	provider := New(&config.Config{GroqURL: server.URL, GroqAPIKey: "gq-key"})

	if _, err := provider.Complete(context.Background(), providers.Config{Prompt: "hi"}); err == nil {
		t.Fatal("Expected error when no choices are returned")
	}
}

func TestCompleteMissingKey(t *testing.T) {
	provider := New(&config.Config{GroqURL: "http://localhost:1"})

	if _, err := provider.Complete(context.Background(), providers.Config{Prompt: "hi"}); err == nil {
		t.Fatal("Expected error when the API key is unset")
	}
}

package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wanderpost/wanderpost/internal/config"
	"github.com/wanderpost/wanderpost/internal/providers"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama3-70b-8192"

// Groq is a provider for Groq's OpenAI-compatible chat completions API
type Groq struct {
	HTTPClient *http.Client

	baseURL string
	apiKey  string
}

// New returns a new Groq provider
func New(cfg *config.Config) *Groq {
	return &Groq{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: cfg.GroqURL,
		apiKey:  cfg.GroqAPIKey,
	}
}

// Complete sends the prompt as a single-message chat completion and returns
// the reply text
func (g *Groq) Complete(ctx context.Context, config providers.Config) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": config.Prompt,
			},
		},
		"temperature": config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from Groq")
	}

	return response.Choices[0].Message.Content, nil
}

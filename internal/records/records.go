package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wanderpost/wanderpost/internal/config"
)

// Record is one travel-page request row in the table store.
type Record struct {
	ID       string
	Location string
	Email    string
	Status   string
	Notes    string
}

// recordFields is the wire shape of a record's field map.
type recordFields struct {
	Location string `json:"Location"`
	Email    string `json:"Email"`
	Status   string `json:"Status"`
	Notes    string `json:"Notes"`
}

// Client talks to the hosted table store's REST API
type Client struct {
	HTTPClient *http.Client

	baseURL string
	baseID  string
	table   string
	apiKey  string
}

// NewClient creates a table store client from the given configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: cfg.AirtableURL,
		baseID:  cfg.AirtableBaseID,
		table:   cfg.AirtableTable,
		apiKey:  cfg.AirtableAPIKey,
	}
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))
}

func (c *Client) recordURL(id string) string {
	return c.tableURL() + "/" + url.PathEscape(id)
}

// ListPending fetches the full table and returns the records whose Status
// field equals "pending", compared case-insensitively. The filter runs
// client-side; the store is queried unfiltered.
func (c *Client) ListPending(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.tableURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("record store returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Records []struct {
			ID     string       `json:"id"`
			Fields recordFields `json:"fields"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode record list: %w", err)
	}

	var pending []Record
	for _, r := range result.Records {
		if !strings.EqualFold(r.Fields.Status, "pending") {
			continue
		}
		pending = append(pending, Record{
			ID:       r.ID,
			Location: r.Fields.Location,
			Email:    r.Fields.Email,
			Status:   r.Fields.Status,
			Notes:    r.Fields.Notes,
		})
	}

	return pending, nil
}

// Get fetches a single record by id. There is no existence check: when the
// store answers with an error document instead of a record, every field
// simply decodes as empty and the caller sees a record with missing fields.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.recordURL(id), nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("failed to fetch record %s: %w", id, err)
	}
	defer resp.Body.Close()

	var result struct {
		ID     string       `json:"id"`
		Fields recordFields `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Record{}, fmt.Errorf("failed to decode record %s: %w", id, err)
	}

	if result.ID == "" {
		result.ID = id
	}

	return Record{
		ID:       result.ID,
		Location: result.Fields.Location,
		Email:    result.Fields.Email,
		Status:   result.Fields.Status,
		Notes:    result.Fields.Notes,
	}, nil
}

// Patch writes a partial field map onto a record. Fields absent from the map
// are left untouched by the store.
func (c *Client) Patch(ctx context.Context, id string, fields map[string]any) error {
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return fmt.Errorf("failed to marshal patch payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PATCH", c.recordURL(id), bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to patch record %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("record store returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wanderpost/wanderpost/internal/config"
)

const (
	// DefaultCount is how many images every travel page carries.
	DefaultCount = 3

	// PlaceholderURL fills the gap when the provider returns fewer results.
	PlaceholderURL     = "https://via.placeholder.com/300x200?text=No+Image"
	placeholderCaption = "No image available"
	missingCaption     = "No caption available"
)

// Image is one search result: a fetchable URL plus its alt-text caption.
type Image struct {
	URL     string
	Caption string
}

// ImageSet is the fixed-length image selection for one page. Search always
// returns exactly DefaultCount entries, padding with placeholders as needed.
type ImageSet []Image

// Fetcher retrieves location photos from the image search provider
type Fetcher struct {
	HTTPClient *http.Client

	searchURL string
	accessKey string
}

// NewFetcher creates a new image fetcher
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		searchURL: cfg.UnsplashURL,
		accessKey: cfg.UnsplashAccessKey,
	}
}

// Search queries the provider for photos of location and returns exactly
// DefaultCount (url, caption) pairs in provider order. Shortfalls degrade to
// placeholder pairs rather than errors, so zero results still yields a full
// set.
func (f *Fetcher) Search(ctx context.Context, location string) (ImageSet, error) {
	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d",
		f.searchURL, url.QueryEscape(location), DefaultCount)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+f.accessKey)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image search returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
			AltDescription string `json:"alt_description"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode image search response: %w", err)
	}

	set := make(ImageSet, 0, DefaultCount)
	for _, r := range result.Results {
		if len(set) == DefaultCount {
			break
		}
		caption := r.AltDescription
		if caption == "" {
			caption = missingCaption
		}
		set = append(set, Image{URL: r.URLs.Regular, Caption: caption})
	}

	// Pad to a full set so downstream stages never see a short slice
	for len(set) < DefaultCount {
		set = append(set, Image{URL: PlaceholderURL, Caption: placeholderCaption})
	}

	return set, nil
}

package maps

import (
	"fmt"
	"strings"

	"github.com/wanderpost/wanderpost/internal/landmarks"
)

const (
	staticMapURL = "https://maps.googleapis.com/maps/api/staticmap"
	searchAPIURL = "https://www.google.com/maps/search/?api=1"

	mapSize = "600x300"
	zoom    = 12
)

// Strategy selects how the static map for a page is composed.
type Strategy string

const (
	// StrategyMarkers pins every labeled landmark on the map.
	StrategyMarkers Strategy = "markers"
	// StrategyCenter centers the map on the location at a fixed zoom.
	StrategyCenter Strategy = "center"
)

// Composer builds static-map image URLs. The URL is never validated against
// the map service; rendering supplies a broken-image fallback instead.
type Composer struct {
	strategy Strategy
	apiKey   string
}

// NewComposer creates a new map composer using the given strategy
func NewComposer(strategy Strategy, apiKey string) (*Composer, error) {
	switch strategy {
	case StrategyMarkers, StrategyCenter:
		return &Composer{strategy: strategy, apiKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unsupported map strategy: %s", strategy)
	}
}

// ImageURL returns a static-map image URL for the page, either one marker
// per annotation or a single centered view depending on the strategy.
func (c *Composer) ImageURL(annotations []landmarks.Annotation, location string) string {
	if c.strategy == StrategyCenter {
		return fmt.Sprintf("%s?size=%s&center=%s&zoom=%d&key=%s",
			staticMapURL, mapSize, plus(location), zoom, c.apiKey)
	}

	markers := make([]string, 0, len(annotations))
	for _, a := range annotations {
		markers = append(markers, fmt.Sprintf("markers=%s,%s", plus(a.Name), plus(location)))
	}

	return fmt.Sprintf("%s?size=%s&%s&key=%s",
		staticMapURL, mapSize, strings.Join(markers, "&"), c.apiKey)
}

// SearchURL returns a maps deep link that searches for a landmark within a
// location, for use behind each image card.
func SearchURL(name, location string) string {
	return fmt.Sprintf("%s&query=%s+%s", searchAPIURL, plus(name), plus(location))
}

func plus(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}

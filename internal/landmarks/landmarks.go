package landmarks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wanderpost/wanderpost/internal/images"
	"github.com/wanderpost/wanderpost/internal/providers"
)

// labelTemperature keeps the model close to the requested line format.
const labelTemperature = 0.5

// Annotation pairs a landmark name with a short travel recommendation.
type Annotation struct {
	Name           string
	Recommendation string
}

// Labeler turns image captions into landmark annotations via one completion
// call and a best-effort parse of the free-text reply.
type Labeler struct {
	provider providers.Provider
	model    string
}

// NewLabeler creates a new landmark labeler backed by the given provider
func NewLabeler(provider providers.Provider, model string) *Labeler {
	return &Labeler{provider: provider, model: model}
}

// Label asks the model to name a landmark and write a recommendation for
// each image in the set. The reply is parsed permissively: lines that do not
// match the requested format are dropped, so the result may hold anywhere
// between zero and len(set) annotations, in reply-line order.
func (l *Labeler) Label(ctx context.Context, set images.ImageSet, location string) ([]Annotation, error) {
	reply, err := l.provider.Complete(ctx, providers.Config{
		Model:       l.model,
		Temperature: labelTemperature,
		Prompt:      buildPrompt(set, location),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to label images: %w", err)
	}

	annotations := ParseAnnotations(reply)
	if len(annotations) < len(set) {
		slog.Warn("Model reply yielded fewer annotations than images",
			"location", location, "images", len(set), "annotations", len(annotations))
	}

	return annotations, nil
}

func buildPrompt(set images.ImageSet, location string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `For each of the %d images below, give:
1) the correct landmark name (1-3 words)
2) a short travel recommendation (1-2 sentences)

If the image has no obvious landmark, make a smart guess or repeat the city name (%s).

Images:
`, len(set), location)

	for _, img := range set {
		fmt.Fprintf(&sb, "- Caption: %s, URL: %s\n", img.Caption, img.URL)
	}

	fmt.Fprintf(&sb, `
Return as a numbered list with exactly %d items.
Format:
1. Landmark Name | Recommendation text
`, len(set))

	return sb.String()
}

// ParseAnnotations extracts "N. name | recommendation" lines from a model
// reply. A line qualifies only when a numeric index precedes the first
// period and a pipe separates name from recommendation; everything else is
// skipped without error. Free-text output is unreliable, so the parse is
// partial-result tolerant by construction.
func ParseAnnotations(reply string) []Annotation {
	var annotations []Annotation

	for _, line := range strings.Split(providers.StripFences(reply), "\n") {
		index, rest, found := strings.Cut(line, ".")
		if !found || !isIndex(strings.TrimSpace(index)) {
			continue
		}

		name, recommendation, found := strings.Cut(rest, "|")
		if !found {
			continue
		}

		annotations = append(annotations, Annotation{
			Name:           strings.TrimSpace(name),
			Recommendation: strings.TrimSpace(recommendation),
		})
	}

	return annotations
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

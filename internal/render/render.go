package render

import (
	"context"
	"net/url"

	"github.com/wanderpost/wanderpost/internal/images"
	"github.com/wanderpost/wanderpost/internal/landmarks"
)

// mapFallbackURL is shown when the static map URL does not resolve to an
// image; map URLs are composed blind and never validated upstream.
const mapFallbackURL = "https://via.placeholder.com/600x300?text=Map+Unavailable"

// Page holds everything a renderer needs to produce one travel page.
// Annotations may hold fewer entries than Images; renderers must tolerate
// the shortfall.
type Page struct {
	RecordID    string
	Location    string
	Images      images.ImageSet
	Annotations []landmarks.Annotation
	MapImageURL string
}

// Renderer produces the HTML email body for a page.
//
// Revise rewrites previously sent HTML according to a reviewer's adjustment
// text. Renderers without a model to revise with fall back to a fresh render.
type Renderer interface {
	Render(ctx context.Context, page Page) (string, error)
	Revise(ctx context.Context, page Page, previousHTML, adjustment string) (string, error)
}

func approveURL(baseURL, recordID string) string {
	return baseURL + "/approve?id=" + url.QueryEscape(recordID)
}

func rejectURL(baseURL, recordID string) string {
	return baseURL + "/reject?id=" + url.QueryEscape(recordID)
}

func rejectAction(baseURL string) string {
	return baseURL + "/reject"
}

// annotationFor returns the annotation for image index i, falling back to
// the location itself when the model reply came up short.
func annotationFor(page Page, i int) landmarks.Annotation {
	if i < len(page.Annotations) {
		return page.Annotations[i]
	}
	return landmarks.Annotation{
		Name:           page.Location,
		Recommendation: "Explore " + page.Location + " and find your own favorite spot.",
	}
}

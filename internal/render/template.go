package render

import (
	"context"
	"fmt"
	"html/template"
	"math/rand/v2"
	"strings"

	"github.com/wanderpost/wanderpost/internal/maps"
)

// accentPalette holds the accent colors a template render picks from.
var accentPalette = []string{"#2a9d8f", "#e76f51", "#457b9d", "#9c6644", "#6d597a"}

const pageTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background:#f7f4ef;font-family:Georgia,serif;color:#333;">
  <div style="max-width:640px;margin:0 auto;">
    <h1 style="color:{{.Accent}};text-align:center;">{{.Location}}</h1>
    {{range .Cards}}
    <div style="background:#fff;border-radius:12px;box-shadow:0 2px 8px rgba(0,0,0,0.08);margin:16px 0;padding:16px;">
      <img src="{{.ImageURL}}" alt="{{.Caption}}" style="width:100%;border-radius:8px;">
      <h2 style="color:{{$.Accent}};margin-bottom:4px;"><a href="{{.MapsURL}}" style="color:{{$.Accent}};text-decoration:none;">{{.Title}}</a></h2>
      <p style="margin-top:0;">{{.Recommendation}}</p>
    </div>
    {{end}}
    <img src="{{.MapImageURL}}" alt="Map of {{.Location}}" onerror="this.src='{{.MapFallbackURL}}'" style="width:100%;border-radius:8px;margin:16px 0;">
    <div style="text-align:center;margin:24px 0;">
      <a href="{{.ApproveURL}}" style="background:#2e7d32;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;margin-right:12px;">Approve</a>
      <a href="{{.RejectURL}}" style="background:#c62828;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;">Reject</a>
    </div>
    <form action="{{.RejectAction}}" method="get" style="text-align:center;">
      <input type="hidden" name="id" value="{{.RecordID}}">
      <textarea name="adjustment" rows="3" placeholder="What should change?" style="width:100%;border-radius:6px;border:1px solid #ccc;padding:8px;"></textarea>
      <button type="submit" style="background:{{.Accent}};color:#fff;border:none;padding:10px 24px;border-radius:6px;margin-top:8px;">Send feedback</button>
    </form>
  </div>
</body>
</html>
`

type templateCard struct {
	ImageURL       string
	Caption        string
	Title          string
	Recommendation string
	MapsURL        string
}

type templateData struct {
	Location       string
	Accent         string
	Cards          []templateCard
	MapImageURL    string
	MapFallbackURL string
	ApproveURL     string
	RejectURL      string
	RejectAction   string
	RecordID       string
}

// TemplateRenderer assembles the page locally from a fixed layout, with one
// randomly chosen accent color per render. No model call is involved.
type TemplateRenderer struct {
	baseURL  string
	template *template.Template
}

// NewTemplateRenderer creates a renderer that assembles the page HTML locally
func NewTemplateRenderer(baseURL string) *TemplateRenderer {
	return &TemplateRenderer{
		baseURL:  baseURL,
		template: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Render assembles the page HTML deterministically, save for the accent color.
func (r *TemplateRenderer) Render(ctx context.Context, page Page) (string, error) {
	data := templateData{
		Location:       page.Location,
		Accent:         accentPalette[rand.IntN(len(accentPalette))],
		MapImageURL:    page.MapImageURL,
		MapFallbackURL: mapFallbackURL,
		ApproveURL:     approveURL(r.baseURL, page.RecordID),
		RejectURL:      rejectURL(r.baseURL, page.RecordID),
		RejectAction:   rejectAction(r.baseURL),
		RecordID:       page.RecordID,
	}

	for i, img := range page.Images {
		annotation := annotationFor(page, i)
		data.Cards = append(data.Cards, templateCard{
			ImageURL:       img.URL,
			Caption:        img.Caption,
			Title:          annotation.Name,
			Recommendation: annotation.Recommendation,
			MapsURL:        maps.SearchURL(annotation.Name, page.Location),
		})
	}

	var sb strings.Builder
	if err := r.template.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute page template: %w", err)
	}

	return sb.String(), nil
}

// Revise has no model to rewrite with, so it renders a fresh page; the
// reviewer's adjustment text only influences the model-authored strategy.
func (r *TemplateRenderer) Revise(ctx context.Context, page Page, previousHTML, adjustment string) (string, error) {
	return r.Render(ctx, page)
}

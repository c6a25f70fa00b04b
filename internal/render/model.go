package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/wanderpost/wanderpost/internal/maps"
	"github.com/wanderpost/wanderpost/internal/providers"
)

// renderTemperature is higher than labeling's: layout variety is welcome,
// format drift is absorbed by using the reply verbatim.
const renderTemperature = 0.7

// ModelRenderer delegates full HTML synthesis to the completion provider.
// The reply is used verbatim as the email body; it is not sanitized or
// validated as well-formed HTML.
type ModelRenderer struct {
	provider providers.Provider
	model    string
	baseURL  string
}

// NewModelRenderer creates a renderer that asks the provider for the page HTML
func NewModelRenderer(provider providers.Provider, model, baseURL string) *ModelRenderer {
	return &ModelRenderer{provider: provider, model: model, baseURL: baseURL}
}

// Render produces the page HTML with a single completion call. The prompt
// embeds the exact approve/reject URLs and feedback form contract the page
// must carry.
func (r *ModelRenderer) Render(ctx context.Context, page Page) (string, error) {
	reply, err := r.provider.Complete(ctx, providers.Config{
		Model:       r.model,
		Temperature: renderTemperature,
		Prompt:      r.buildPrompt(page),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate page HTML: %w", err)
	}

	return providers.StripFences(reply), nil
}

// Revise sends the previously generated HTML back to the model with the
// reviewer's adjustment and returns the rewritten page.
func (r *ModelRenderer) Revise(ctx context.Context, page Page, previousHTML, adjustment string) (string, error) {
	prompt := fmt.Sprintf(`Here is the previous HTML email:
%s

The reviewer requested this adjustment:
%s

Regenerate the HTML email accordingly, improving the design as requested.
- Use inline CSS.
- Keep the layout, buttons, and form functional.
- Do NOT add comments or explanations - return only the updated HTML.
`, previousHTML, adjustment)

	reply, err := r.provider.Complete(ctx, providers.Config{
		Model:       r.model,
		Temperature: renderTemperature,
		Prompt:      prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to revise page HTML: %w", err)
	}

	return providers.StripFences(reply), nil
}

func (r *ModelRenderer) buildPrompt(page Page) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Generate a beautiful HTML email with inline CSS.
Include:
- Header: %s
- %d image cards with Google Maps links, titles, recommendations
- Soft background, rounded images, shadows
- Bottom: map image %s, approve + reject buttons, feedback form.
- Approve button: <a href='%s'> styled green
- Reject button: <a href='%s'> styled red
- Feedback form: action='%s', hidden input 'id'=%s, textarea 'adjustment'
- If the map image fails to load, fall back to %s via an onerror attribute
Return only the HTML code, no explanations.
`,
		page.Location,
		len(page.Images),
		page.MapImageURL,
		approveURL(r.baseURL, page.RecordID),
		rejectURL(r.baseURL, page.RecordID),
		rejectAction(r.baseURL),
		page.RecordID,
		mapFallbackURL,
	)

	for i, img := range page.Images {
		annotation := annotationFor(page, i)
		fmt.Fprintf(&sb, "\n- Image %d: %s, Label: %s, Recommendation: %s, Maps URL: %s",
			i+1, img.URL, annotation.Name, annotation.Recommendation,
			maps.SearchURL(annotation.Name, page.Location))
	}

	return sb.String()
}

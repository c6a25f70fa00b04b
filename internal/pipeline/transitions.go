package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ApproveResult reports how far an approval got. By the time a result is
// returned the email has already been sent; Persisted tells whether the
// published link and status made it into the record store as well.
type ApproveResult struct {
	Location   string
	Link       string
	Persisted  bool
	PersistErr error
}

// Approve re-derives the page from the record's current location, sends it,
// publishes the HTML under the static directory, and marks the record
// approved with a public link in its Notes field.
//
// The transition is one-way pending -> approved but not idempotent: calling
// it again re-runs the pipeline, re-sends, and re-writes the same fields.
// Persistence failures after the send are reported in the result, not as an
// error, so callers can tell "approved but not saved" from a dead pipeline.
func (s *Service) Approve(ctx context.Context, id string) (ApproveResult, error) {
	rec, err := s.deps.Records.Get(ctx, id)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("failed to fetch record %s: %w", id, err)
	}

	html, _, err := s.compose(ctx, rec)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("failed to compose page for record %s: %w", id, err)
	}

	if err := s.deps.Mailer.Send(rec.Email, "Approved travel page for "+rec.Location, html); err != nil {
		return ApproveResult{}, fmt.Errorf("failed to send approved page for record %s: %w", id, err)
	}
	s.cache.Set(id, html)

	result := ApproveResult{Location: rec.Location}

	link, err := s.publish(id, html)
	if err != nil {
		result.PersistErr = err
		return result, nil
	}
	result.Link = link

	fields := map[string]any{"Status": "approved", "Notes": link}
	if err := s.deps.Records.Patch(ctx, id, fields); err != nil {
		result.PersistErr = err
		return result, nil
	}

	result.Persisted = true
	slog.Info("Approved record", "id", id, "location", rec.Location, "link", link)
	return result, nil
}

// Reject re-derives and resends the page without ever touching the record's
// status, so a record can be rejected any number of times and stays pending
// until approved. When adjustment text is present the renderer revises the
// last HTML sent for this id (falling back to the fresh composition when the
// cache has none) instead of sending the regeneration as-is.
func (s *Service) Reject(ctx context.Context, id, adjustment string) error {
	rec, err := s.deps.Records.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch record %s: %w", id, err)
	}

	html, page, err := s.compose(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to compose page for record %s: %w", id, err)
	}

	if adjustment = strings.TrimSpace(adjustment); adjustment != "" {
		previous := html
		if cached, ok := s.cache.Get(id); ok {
			previous = cached
		}
		html, err = s.deps.Renderer.Revise(ctx, page, previous, adjustment)
		if err != nil {
			return fmt.Errorf("failed to revise page for record %s: %w", id, err)
		}
	}

	if err := s.deps.Mailer.Send(rec.Email, "Updated travel page for "+rec.Location, html); err != nil {
		return fmt.Errorf("failed to send updated page for record %s: %w", id, err)
	}
	s.cache.Set(id, html)

	slog.Info("Rejected record, resent proposal", "id", id, "location", rec.Location, "adjusted", adjustment != "")
	return nil
}

// publish writes the approved HTML under the public static path and returns
// the link that goes into the record's Notes field.
func (s *Service) publish(id, html string) (string, error) {
	dir := filepath.Join(s.cfg.StaticDir, "approved_html")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create approved_html dir: %w", err)
	}

	path := filepath.Join(dir, id+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to save approved page: %w", err)
	}

	return s.cfg.BaseURL + "/static/approved_html/" + id + ".html", nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wanderpost/wanderpost/internal/config"
	"github.com/wanderpost/wanderpost/internal/images"
	"github.com/wanderpost/wanderpost/internal/landmarks"
	"github.com/wanderpost/wanderpost/internal/maps"
	"github.com/wanderpost/wanderpost/internal/pagecache"
	"github.com/wanderpost/wanderpost/internal/records"
	"github.com/wanderpost/wanderpost/internal/render"
)

// RecordStore reads and patches travel-page records in the table store.
type RecordStore interface {
	ListPending(ctx context.Context) ([]records.Record, error)
	Get(ctx context.Context, id string) (records.Record, error)
	Patch(ctx context.Context, id string, fields map[string]any) error
}

// ImageSearcher returns the fixed-length image selection for a location.
type ImageSearcher interface {
	Search(ctx context.Context, location string) (images.ImageSet, error)
}

// Labeler annotates an image set with landmark names and recommendations.
type Labeler interface {
	Label(ctx context.Context, set images.ImageSet, location string) ([]landmarks.Annotation, error)
}

// Mailer delivers one rendered page per call.
type Mailer interface {
	Send(recipient, subject, htmlBody string) error
}

// Deps bundles the stage implementations a Service orchestrates.
type Deps struct {
	Records  RecordStore
	Images   ImageSearcher
	Labeler  Labeler
	Maps     *maps.Composer
	Renderer render.Renderer
	Mailer   Mailer
}

// Service drives the content-generation pipeline: a batch sweep over pending
// records at startup, plus the approve and reject transitions triggered per
// record id. Stages run strictly in sequence; each trigger executes to
// completion on its own goroutine with no mutual exclusion across record ids.
type Service struct {
	cfg   *config.Config
	deps  Deps
	cache *pagecache.Store
}

// New creates a pipeline service
func New(cfg *config.Config, deps Deps) *Service {
	return &Service{
		cfg:   cfg,
		deps:  deps,
		cache: pagecache.New(),
	}
}

// Sweep runs the full pipeline once for every pending record and emails each
// proposal. Record status is left untouched; only approve changes it. The
// first failing record aborts the remainder of the sweep.
func (s *Service) Sweep(ctx context.Context) error {
	pending, err := s.deps.Records.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending records: %w", err)
	}

	slog.Info("Processing pending records", "count", len(pending))

	for _, rec := range pending {
		slog.Info("Processing record", "id", rec.ID, "location", rec.Location, "email", rec.Email)

		html, _, err := s.compose(ctx, rec)
		if err != nil {
			return fmt.Errorf("failed to compose page for record %s: %w", rec.ID, err)
		}

		if err := s.deps.Mailer.Send(rec.Email, "Travel page for "+rec.Location, html); err != nil {
			return fmt.Errorf("failed to send proposal for record %s: %w", rec.ID, err)
		}

		s.cache.Set(rec.ID, html)
	}

	slog.Info("Done sending all proposals", "count", len(pending))
	return nil
}

// compose runs stages 2-5 for one record: image search, landmark labeling,
// map composition, page rendering. Data flows strictly forward.
func (s *Service) compose(ctx context.Context, rec records.Record) (string, render.Page, error) {
	set, err := s.deps.Images.Search(ctx, rec.Location)
	if err != nil {
		return "", render.Page{}, fmt.Errorf("image search failed: %w", err)
	}

	annotations, err := s.deps.Labeler.Label(ctx, set, rec.Location)
	if err != nil {
		return "", render.Page{}, fmt.Errorf("landmark labeling failed: %w", err)
	}

	page := render.Page{
		RecordID:    rec.ID,
		Location:    rec.Location,
		Images:      set,
		Annotations: annotations,
		MapImageURL: s.deps.Maps.ImageURL(annotations, rec.Location),
	}

	html, err := s.deps.Renderer.Render(ctx, page)
	if err != nil {
		return "", render.Page{}, fmt.Errorf("page rendering failed: %w", err)
	}

	return html, page, nil
}

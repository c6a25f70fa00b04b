package cmd

import (
	"fmt"

	"github.com/wanderpost/wanderpost/internal/config"
	"github.com/wanderpost/wanderpost/internal/gemini"
	"github.com/wanderpost/wanderpost/internal/groq"
	"github.com/wanderpost/wanderpost/internal/images"
	"github.com/wanderpost/wanderpost/internal/landmarks"
	"github.com/wanderpost/wanderpost/internal/mailer"
	"github.com/wanderpost/wanderpost/internal/maps"
	"github.com/wanderpost/wanderpost/internal/pipeline"
	"github.com/wanderpost/wanderpost/internal/providers"
	"github.com/wanderpost/wanderpost/internal/records"
	"github.com/wanderpost/wanderpost/internal/render"
)

// newService wires the configured provider, strategies, and transports into
// a pipeline service. Shared by the serve and sweep commands.
func newService(cfg *config.Config) (*pipeline.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var provider providers.Provider
	switch cfg.Provider {
	case "groq":
		provider = groq.New(cfg)
	case "gemini":
		provider = gemini.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	composer, err := maps.NewComposer(maps.Strategy(cfg.MapStrategy), cfg.GoogleMapsAPIKey)
	if err != nil {
		return nil, err
	}

	var renderer render.Renderer
	switch cfg.RenderStrategy {
	case "model":
		renderer = render.NewModelRenderer(provider, cfg.Model, cfg.BaseURL)
	case "template":
		renderer = render.NewTemplateRenderer(cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported render strategy: %s", cfg.RenderStrategy)
	}

	return pipeline.New(cfg, pipeline.Deps{
		Records:  records.NewClient(cfg),
		Images:   images.NewFetcher(cfg),
		Labeler:  landmarks.NewLabeler(provider, cfg.Model),
		Maps:     composer,
		Renderer: renderer,
		Mailer:   mailer.New(cfg),
	}), nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every credential and endpoint the pipeline needs. It is
// built once in the command layer and passed into each stage, so nothing
// reads the environment after startup and tests can inject fake endpoints.
type Config struct {
	// Record store
	AirtableAPIKey string
	AirtableBaseID string
	AirtableTable  string
	AirtableURL    string

	// Image search
	UnsplashAccessKey string
	UnsplashURL       string

	// Static maps
	GoogleMapsAPIKey string

	// Completion providers
	Provider     string
	Model        string
	GroqAPIKey   string
	GroqURL      string
	GeminiAPIKey string

	// Outbound mail
	SenderEmail    string
	SenderPassword string
	SMTPHost       string
	SMTPPort       int

	// Server
	BaseURL        string
	StaticDir      string
	MapStrategy    string
	RenderStrategy string
}

// fileConfig holds the non-secret settings an optional YAML file may
// override. Credentials only ever come from the environment.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	StaticDir      string `yaml:"static_dir"`
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	MapStrategy    string `yaml:"map_strategy"`
	RenderStrategy string `yaml:"render_strategy"`
	SMTPHost       string `yaml:"smtp_host"`
	SMTPPort       int    `yaml:"smtp_port"`
	TableName      string `yaml:"table_name"`
}

// FromEnv builds a Config from environment variables with defaults matching
// the hosted services the pipeline was written against.
func FromEnv() *Config {
	return &Config{
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		AirtableTable:  envOr("AIRTABLE_TABLE_NAME", "Table 1"),
		AirtableURL:    envOr("WANDERPOST_AIRTABLE_URL", "https://api.airtable.com/v0"),

		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		UnsplashURL:       envOr("WANDERPOST_UNSPLASH_URL", "https://api.unsplash.com"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		Provider:     envOr("WANDERPOST_PROVIDER", "groq"),
		Model:        os.Getenv("WANDERPOST_MODEL"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GroqURL:      envOr("WANDERPOST_GROQ_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		SenderPassword: os.Getenv("SENDER_PASSWORD"),
		SMTPHost:       envOr("WANDERPOST_SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       465,

		BaseURL:        envOr("WANDERPOST_BASE_URL", "http://localhost:8080"),
		StaticDir:      envOr("WANDERPOST_STATIC_DIR", "static"),
		MapStrategy:    envOr("WANDERPOST_MAP_STRATEGY", "markers"),
		RenderStrategy: envOr("WANDERPOST_RENDER_STRATEGY", "model"),
	}
}

// Load builds a Config from the environment and, when path names a readable
// YAML file, overlays its non-secret settings.
func Load(path string) (*Config, error) {
	cfg := FromEnv()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.StaticDir != "" {
		cfg.StaticDir = fc.StaticDir
	}
	if fc.Provider != "" {
		cfg.Provider = fc.Provider
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.MapStrategy != "" {
		cfg.MapStrategy = fc.MapStrategy
	}
	if fc.RenderStrategy != "" {
		cfg.RenderStrategy = fc.RenderStrategy
	}
	if fc.SMTPHost != "" {
		cfg.SMTPHost = fc.SMTPHost
	}
	if fc.SMTPPort != 0 {
		cfg.SMTPPort = fc.SMTPPort
	}
	if fc.TableName != "" {
		cfg.AirtableTable = fc.TableName
	}

	return cfg, nil
}

// Validate reports the first missing credential the pipeline cannot run
// without.
func (c *Config) Validate() error {
	switch {
	case c.AirtableAPIKey == "":
		return fmt.Errorf("AIRTABLE_API_KEY environment variable not set")
	case c.AirtableBaseID == "":
		return fmt.Errorf("AIRTABLE_BASE_ID environment variable not set")
	case c.UnsplashAccessKey == "":
		return fmt.Errorf("UNSPLASH_ACCESS_KEY environment variable not set")
	case c.SenderEmail == "":
		return fmt.Errorf("SENDER_EMAIL environment variable not set")
	case c.SenderPassword == "":
		return fmt.Errorf("SENDER_PASSWORD environment variable not set")
	}

	switch c.Provider {
	case "groq":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AIRTABLE_API_KEY", "at-key")
	t.Setenv("AIRTABLE_BASE_ID", "base1")
	t.Setenv("UNSPLASH_ACCESS_KEY", "un-key")
	t.Setenv("GROQ_API_KEY", "gq-key")
	t.Setenv("SENDER_EMAIL", "sender@example.com")
	t.Setenv("SENDER_PASSWORD", "hunter2")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := FromEnv()

	if cfg.AirtableURL != "https://api.airtable.com/v0" {
		t.Errorf("Unexpected table store URL: %s", cfg.AirtableURL)
	}
	if cfg.AirtableTable != "Table 1" {
		t.Errorf("Unexpected default table: %s", cfg.AirtableTable)
	}
	if cfg.Provider != "groq" {
		t.Errorf("Unexpected default provider: %s", cfg.Provider)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 465 {
		t.Errorf("Unexpected SMTP defaults: %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.MapStrategy != "markers" || cfg.RenderStrategy != "model" {
		t.Errorf("Unexpected strategy defaults: %s/%s", cfg.MapStrategy, cfg.RenderStrategy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "wanderpost.yaml")
	content := `base_url: https://pages.example.com
render_strategy: template
map_strategy: center
smtp_port: 587
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.BaseURL != "https://pages.example.com" {
		t.Errorf("File base_url not applied: %s", cfg.BaseURL)
	}
	if cfg.RenderStrategy != "template" || cfg.MapStrategy != "center" {
		t.Errorf("File strategies not applied: %s/%s", cfg.RenderStrategy, cfg.MapStrategy)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("File smtp_port not applied: %d", cfg.SMTPPort)
	}
	// Env-only settings survive the overlay
	if cfg.AirtableAPIKey != "at-key" {
		t.Errorf("Env credential lost: %s", cfg.AirtableAPIKey)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("Defaults not used when file is missing: %s", cfg.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing table store key", func(c *Config) { c.AirtableAPIKey = "" }},
		{"missing base id", func(c *Config) { c.AirtableBaseID = "" }},
		{"missing image search key", func(c *Config) { c.UnsplashAccessKey = "" }},
		{"missing sender", func(c *Config) { c.SenderEmail = "" }},
		{"missing groq key", func(c *Config) { c.GroqAPIKey = "" }},
		{"missing gemini key", func(c *Config) { c.Provider = "gemini"; c.GeminiAPIKey = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			cfg := FromEnv()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

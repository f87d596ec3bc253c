package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Analysis.Locality != "gachibowli" {
		t.Fatalf("unexpected default locality %q", cfg.Analysis.Locality)
	}
	if cfg.Analysis.ItemLimit != 50 {
		t.Fatalf("unexpected default item limit %d", cfg.Analysis.ItemLimit)
	}
	if !cfg.Analysis.DemoContent {
		t.Fatal("demo content should default to enabled")
	}
	if cfg.LLM.Endpoint == "" || cfg.LLM.Model == "" {
		t.Fatalf("llm defaults missing: %+v", cfg.LLM)
	}
	if len(cfg.Sources.Forum.Subreddits) == 0 {
		t.Fatal("default subreddits missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg := Load()
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("api key override ignored: %q", cfg.LLM.APIKey)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("log level override ignored: %q", cfg.Logging.Level)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Fatalf("database path override ignored: %q", cfg.Database.Path)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	raw := `
analysis:
  locality: kondapur
  itemLimit: 25
  interval: 1h
llm:
  model: custom-model
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ESTATE_PULSE_CONFIG", path)

	cfg := Load()
	if cfg.Analysis.Locality != "kondapur" {
		t.Fatalf("yaml locality ignored: %q", cfg.Analysis.Locality)
	}
	if cfg.Analysis.ItemLimit != 25 {
		t.Fatalf("yaml item limit ignored: %d", cfg.Analysis.ItemLimit)
	}
	if cfg.Analysis.Interval != time.Hour {
		t.Fatalf("yaml interval ignored: %s", cfg.Analysis.Interval)
	}
	if cfg.LLM.Model != "custom-model" {
		t.Fatalf("yaml model ignored: %q", cfg.LLM.Model)
	}
	// Fields the file omits keep their defaults.
	if cfg.Sources.News.FeedURL == "" {
		t.Fatal("default feed url lost during merge")
	}
}

func TestLoadDemoContentDisabled(t *testing.T) {
	raw := `
analysis:
  locality: kondapur
  demoContent: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ESTATE_PULSE_CONFIG", path)

	cfg := Load()
	if cfg.Analysis.DemoContent {
		t.Fatal("demoContent: false in the config file was ignored")
	}
}

func TestLoadDemoContentOmittedKeepsDefault(t *testing.T) {
	raw := `
analysis:
  locality: kondapur
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ESTATE_PULSE_CONFIG", path)

	cfg := Load()
	if !cfg.Analysis.DemoContent {
		t.Fatal("omitting demoContent should keep the enabled default")
	}
}

func TestLoadBadYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("analysis: ["), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ESTATE_PULSE_CONFIG", path)

	cfg := Load()
	if cfg.Analysis.Locality != "gachibowli" {
		t.Fatalf("bad yaml should fall back to defaults, got %q", cfg.Analysis.Locality)
	}
}

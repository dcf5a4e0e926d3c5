package similarity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults pass", func(c *Config) {}, false},
		{"High below warn", func(c *Config) { c.HighThreshold = 0.5 }, true},
		{"High equals warn", func(c *Config) { c.HighThreshold = c.WarnThreshold }, true},
		{"Weights do not sum to one", func(c *Config) { c.TagWeight = 0.5 }, true},
		{"Negative weight", func(c *Config) { c.DistanceWeight = -0.1; c.TitleWeight = 0.95 }, true},
		{"Max distance below optimal", func(c *Config) { c.MaxDistanceMeters = 10 }, true},
		{"Zero min title length", func(c *Config) { c.MinTitleLength = 0 }, true},
		{"Alternate valid weights", func(c *Config) {
			c.DistanceWeight = 0.4
			c.TitleWeight = 0.4
			c.TagWeight = 0.2
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "similarity.yaml")
	content := []byte(`
warn_threshold: 0.6
high_threshold: 0.85
distance_weight: 0.4
title_weight: 0.4
tag_weight: 0.2
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WarnThreshold != 0.6 || cfg.HighThreshold != 0.85 {
		t.Errorf("thresholds not applied: %+v", cfg)
	}
	if cfg.DistanceWeight != 0.4 || cfg.TitleWeight != 0.4 || cfg.TagWeight != 0.2 {
		t.Errorf("weights not applied: %+v", cfg)
	}
	// Omitted fields keep defaults.
	if cfg.OptimalDistanceMeters != 50 || cfg.MaxDistanceMeters != 1000 {
		t.Errorf("distance params should keep defaults: %+v", cfg)
	}
	if cfg.MinTitleLength != 3 || len(cfg.StopWords) == 0 {
		t.Errorf("title params should keep defaults: %+v", cfg)
	}
}

func TestLoadConfig_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "similarity.yaml")
	// Weights sum to 1.2; must fail validation at load time.
	content := []byte(`
distance_weight: 0.5
title_weight: 0.5
tag_weight: 0.2
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for bad weights")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/similarity.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

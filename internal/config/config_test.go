package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Transcode.Workers != defaultTranscodeWorkers {
		t.Fatalf("workers = %d, want %d", cfg.Transcode.Workers, defaultTranscodeWorkers)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[library]
movies_dir = "Films"

[transcode]
workers = 4

[scan]
video_extensions = ["mkv", ".MP4"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("config file should be detected")
	}
	if cfg.Library.MoviesDir != "Films" {
		t.Fatalf("movies_dir = %q", cfg.Library.MoviesDir)
	}
	if cfg.Library.ShowsDir != defaultShowsDir {
		t.Fatalf("shows_dir should keep default, got %q", cfg.Library.ShowsDir)
	}
	if cfg.Transcode.Workers != 4 {
		t.Fatalf("workers = %d", cfg.Transcode.Workers)
	}
	// Extensions are normalized to lowercase dotted form.
	if got := strings.Join(cfg.Scan.VideoExtensions, ","); got != ".mkv,.mp4" {
		t.Fatalf("extensions = %q", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Transcode.Workers = 0 }},
		{"positive loudness", func(c *Config) { c.Transcode.IntegratedLoudness = 3 }},
		{"empty movies dir", func(c *Config) { c.Library.MoviesDir = "" }},
		{"same subdirs", func(c *Config) { c.Library.ShowsDir = c.Library.MoviesDir }},
		{"no extensions", func(c *Config) { c.Scan.VideoExtensions = nil }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatal(err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}

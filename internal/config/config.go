package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library controls the target directory layout.
type Library struct {
	MoviesDir string `toml:"movies_dir"`
	ShowsDir  string `toml:"shows_dir"`
}

// Scan controls source directory scanning.
type Scan struct {
	VideoExtensions []string `toml:"video_extensions"`
}

// Shows holds TV-specific policy knobs.
type Shows struct {
	// DefaultSeason is assigned to episodes whose filename carries no
	// season tag. A guess at ambiguous input, so it is configurable.
	DefaultSeason int `toml:"default_season"`
}

// Transcode configures the optional audio downmix stage.
type Transcode struct {
	Workers      int    `toml:"workers"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
	// Loudness normalization targets passed to ffmpeg's loudnorm filter.
	// Fixed configuration constants, never recomputed per file.
	IntegratedLoudness float64 `toml:"integrated_loudness"`
	TruePeak           float64 `toml:"true_peak"`
	LoudnessRange      float64 `toml:"loudness_range"`
}

// Paths contains state directory configuration.
type Paths struct {
	// StateDir holds the run-history database, the run lock file, and logs.
	StateDir string `toml:"state_dir"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for curator.
type Config struct {
	Library   Library   `toml:"library"`
	Scan      Scan      `toml:"scan"`
	Shows     Shows     `toml:"shows"`
	Transcode Transcode `toml:"transcode"`
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. When path is
// empty the default location is used; a missing file yields defaults. The
// returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureStateDir creates the state directory when missing.
func (c *Config) EnsureStateDir() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}
	return nil
}

// HistoryDBPath returns the location of the run-history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath returns the location of the single-run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "curator.lock")
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, !info.IsDir(), nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	for i, ext := range c.Scan.VideoExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.VideoExtensions[i] = ext
	}
	return nil
}

// ExpandPath resolves a leading ~ against the home directory and makes the
// result absolute.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateShows(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if strings.TrimSpace(c.Library.MoviesDir) == "" {
		return errors.New("library.movies_dir must be set")
	}
	if strings.TrimSpace(c.Library.ShowsDir) == "" {
		return errors.New("library.shows_dir must be set")
	}
	if c.Library.MoviesDir == c.Library.ShowsDir {
		return errors.New("library.movies_dir and library.shows_dir must differ")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.VideoExtensions) == 0 {
		return errors.New("scan.video_extensions must list at least one extension")
	}
	for _, ext := range c.Scan.VideoExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("scan.video_extensions: invalid extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateShows() error {
	if c.Shows.DefaultSeason < 0 {
		return errors.New("shows.default_season must not be negative")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.Workers < 1 {
		return errors.New("transcode.workers must be at least 1")
	}
	if strings.TrimSpace(c.Transcode.FFmpegBinary) == "" {
		return errors.New("transcode.ffmpeg_binary must be set")
	}
	if c.Transcode.IntegratedLoudness > 0 {
		return errors.New("transcode.integrated_loudness is expressed in LUFS and must not be positive")
	}
	if c.Transcode.TruePeak > 0 {
		return errors.New("transcode.true_peak is expressed in dBTP and must not be positive")
	}
	if c.Transcode.LoudnessRange <= 0 {
		return errors.New("transcode.loudness_range must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

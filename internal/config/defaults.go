package config

const (
	defaultStateDir           = "~/.local/share/curator"
	defaultMoviesDir          = "Movies"
	defaultShowsDir           = "Shows"
	defaultDefaultSeason      = 1
	defaultTranscodeWorkers   = 2
	defaultFFmpegBinary       = "ffmpeg"
	defaultIntegratedLoudness = -14.0
	defaultTruePeak           = -1.5
	defaultLoudnessRange      = 9.0
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

func defaultVideoExtensions() []string {
	return []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".iso"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			MoviesDir: defaultMoviesDir,
			ShowsDir:  defaultShowsDir,
		},
		Scan: Scan{
			VideoExtensions: defaultVideoExtensions(),
		},
		Shows: Shows{
			DefaultSeason: defaultDefaultSeason,
		},
		Transcode: Transcode{
			Workers:            defaultTranscodeWorkers,
			FFmpegBinary:       defaultFFmpegBinary,
			IntegratedLoudness: defaultIntegratedLoudness,
			TruePeak:           defaultTruePeak,
			LoudnessRange:      defaultLoudnessRange,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package preflight

import (
	"curator/internal/config"
	"curator/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects which checks apply to this run. MoviesDir and ShowsDir
// are the resolved library paths under the target root.
type Options struct {
	SourceDir string
	MoviesDir string
	ShowsDir  string
	// RequiredBytes is the total plan size; zero skips the space check.
	RequiredBytes int64
	// Downmix adds the ffmpeg availability check.
	Downmix bool
}

// RunAll executes the applicable checks for the given config and run options.
func RunAll(cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckSourceReadable("Source directory", opts.SourceDir),
		CheckDirectoryWritable("Movies library", opts.MoviesDir),
		CheckDirectoryWritable("Shows library", opts.ShowsDir),
	}
	if opts.RequiredBytes > 0 {
		results = append(results, CheckFreeSpace("Library free space", opts.MoviesDir, opts.RequiredBytes))
	}
	if opts.Downmix {
		results = append(results, checkFFmpeg(cfg.Transcode.FFmpegBinary))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func checkFFmpeg(binary string) Result {
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Required for audio downmixing",
	}})
	status := statuses[0]
	if status.Available {
		return Result{Name: status.Name, Passed: true, Detail: status.Command}
	}
	return Result{Name: status.Name, Detail: status.Detail}
}

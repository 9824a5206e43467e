package history

import (
	"path/filepath"
	"time"
)

// Run is one recorded organize invocation.
type Run struct {
	ID          string
	SourceDir   string
	MoviesDir   string
	ShowsDir    string
	ContentType string
	DryRun      bool
	StartedAt   time.Time
	FinishedAt  time.Time // zero until the run finishes
	Scanned     int
	Copied      int
	Skipped     int
	Failed      int
	Unresolved  int
	Transcoded  int
	BytesCopied int64
}

// TargetDir derives the run's target root. The movies library always sits
// directly under it.
func (r Run) TargetDir() string {
	return filepath.Dir(r.MoviesDir)
}

// Finished reports whether the run recorded a completion time.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Summary carries the final counters written when a run completes.
type Summary struct {
	Scanned     int
	Copied      int
	Skipped     int
	Failed      int
	Unresolved  int
	Transcoded  int
	BytesCopied int64
}

// FileRecord is the per-file outcome attached to a run.
type FileRecord struct {
	SourcePath string
	DestPath   string
	Kind       string
	Status     string
	Detail     string
}

// Package organize executes a placement plan against the destination
// library. Copies are atomic (temp file plus rename), failures are recorded
// per file instead of aborting the run, and reruns skip files that already
// landed intact.
package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/plan"
	"curator/internal/services"
)

// Status is the outcome of one planned file.
type Status string

const (
	StatusCopied  Status = "copied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FileResult records what happened to one plan entry.
type FileResult struct {
	Source string
	Dest   string
	Status Status
	Bytes  int64
	Err    error
}

// Report summarizes an organize run.
type Report struct {
	Copied      int
	Skipped     int
	Failed      int
	BytesCopied int64
	Results     []FileResult
}

// Failures returns the failed results, in plan order.
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Options tunes a single Execute call.
type Options struct {
	// DryRun plans the work and reports it without touching the
	// destination.
	DryRun bool
	// Progress, when set, receives the byte delta of each copied chunk.
	Progress func(delta int64)
}

// Organizer copies planned files into the library.
type Organizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{logger: logger}
}

// Execute runs every plan entry in order. A per-file failure is recorded and
// the run continues; only context cancellation stops it early, returning the
// partial report alongside the context error.
func (o *Organizer) Execute(ctx context.Context, p *plan.Plan, opts Options) (*Report, error) {
	report := &Report{}
	for _, entry := range p.Entries {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, "organize", "execute", "run cancelled", err)
		}
		res := o.place(entry, opts)
		report.Results = append(report.Results, res)
		switch res.Status {
		case StatusCopied:
			report.Copied++
			report.BytesCopied += res.Bytes
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
			o.logger.Error("file failed",
				logging.String("source", entry.Source.Path),
				logging.String("dest", entry.Dest),
				logging.Error(res.Err))
		}
	}
	return report, nil
}

func (o *Organizer) place(entry plan.Entry, opts Options) FileResult {
	res := FileResult{Source: entry.Source.Path, Dest: entry.Dest}

	same, err := fileutil.SameFile(entry.Source.Path, entry.Dest)
	if err == nil && same {
		res.Status = StatusSkipped
		o.logger.Info("already in place",
			logging.String("source", entry.Source.Path),
			logging.String("dest", entry.Dest))
		if opts.Progress != nil {
			opts.Progress(entry.Source.Size)
		}
		return res
	}

	if opts.DryRun {
		res.Status = StatusSkipped
		o.logger.Info("dry run: would copy",
			logging.String("source", entry.Source.Path),
			logging.String("dest", entry.Dest))
		return res
	}

	if err := os.MkdirAll(filepath.Dir(entry.Dest), 0o755); err != nil {
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrTransient, "organize", "mkdir",
			fmt.Sprintf("creating %s", filepath.Dir(entry.Dest)), err)
		return res
	}

	if err := fileutil.CopyFileAtomic(entry.Source.Path, entry.Dest, opts.Progress); err != nil {
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrTransient, "organize", "copy",
			fmt.Sprintf("copying %s", entry.Source.Name), err)
		return res
	}
	res.Status = StatusCopied
	res.Bytes = entry.Source.Size
	o.logger.Info("copied",
		logging.String("source", entry.Source.Path),
		logging.String("dest", entry.Dest),
		logging.Int64("bytes", res.Bytes))
	return res
}

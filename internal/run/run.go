// Package run coordinates one organize invocation end to end: scan,
// extract, classify, group, plan, preflight, copy, optional downmix, and
// history recording. The CLI owns presentation; this package owns sequencing
// and the run report.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/group"
	"curator/internal/history"
	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/organize"
	"curator/internal/parse"
	"curator/internal/plan"
	"curator/internal/preflight"
	"curator/internal/scan"
	"curator/internal/services"
	"curator/internal/services/ffmpeg"
	"curator/internal/transcode"
)

// Options parametrize a single run.
type Options struct {
	SourceDir   string
	TargetDir   string
	ContentType classify.ContentType
	Downmix     bool
	DryRun      bool
	// OnPlan fires once the plan is built, before any side effect.
	OnPlan func(*plan.Plan)
	// Progress receives copied-byte deltas during the copy stage.
	Progress func(delta int64)
}

// Outcome aggregates everything a run produced.
type Outcome struct {
	RunID      string
	Scanned    int
	Classified classify.Summary
	Preflight  []preflight.Result
	Plan       *plan.Plan
	Organize   *organize.Report
	Transcode  *transcode.Report
}

// Clean reports whether the run finished with nothing failed and nothing
// unresolved, the condition for a zero exit code.
func (o *Outcome) Clean() bool {
	if o.Organize != nil && o.Organize.Failed > 0 {
		return false
	}
	if o.Transcode != nil && o.Transcode.Failed > 0 {
		return false
	}
	return o.Plan == nil || len(o.Plan.Unresolved) == 0
}

// Summary flattens the outcome into history counters.
func (o *Outcome) Summary() history.Summary {
	s := history.Summary{Scanned: o.Scanned}
	if o.Plan != nil {
		s.Unresolved = len(o.Plan.Unresolved)
	}
	if o.Organize != nil {
		s.Copied = o.Organize.Copied
		s.Skipped = o.Organize.Skipped
		s.Failed = o.Organize.Failed
		s.BytesCopied = o.Organize.BytesCopied
	}
	if o.Transcode != nil {
		s.Transcoded = o.Transcode.Transcoded
		s.Failed += o.Transcode.Failed
	}
	return s
}

// Runner executes organize runs against a fixed config.
type Runner struct {
	cfg    *config.Config
	store  *history.Store
	client ffmpeg.Client
	logger *slog.Logger
}

// New builds a runner. The store may be nil, which disables history
// recording; the ffmpeg client may be nil when downmix will not be used.
func New(cfg *config.Config, store *history.Store, client ffmpeg.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, store: store, client: client, logger: logger}
}

// Execute performs one full run. It returns an error only for fatal
// conditions: an unreadable source, failed preflight, or cancellation.
// Per-file problems land in the outcome instead.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Outcome, error) {
	moviesDir := filepath.Join(opts.TargetDir, r.cfg.Library.MoviesDir)
	showsDir := filepath.Join(opts.TargetDir, r.cfg.Library.ShowsDir)
	outcome := &Outcome{}
	started := time.Now()

	r.logger.Info("starting run",
		logging.String("source", opts.SourceDir),
		logging.String("target", opts.TargetDir),
		logging.Any("content_type", opts.ContentType),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("downmix", opts.Downmix))

	scanner := scan.NewScanner(r.cfg.Scan.VideoExtensions, logging.NewComponentLogger(r.logger, "scan"))
	files, err := scanner.Scan(opts.SourceDir)
	if err != nil {
		return nil, err
	}
	outcome.Scanned = len(files)

	extractor := parse.New()
	items := classify.Apply(files, extractor, opts.ContentType)
	outcome.Classified = classify.Summarize(items)
	r.logger.Info("classified files",
		logging.Int("movies", outcome.Classified.Movies),
		logging.Int("episodes", outcome.Classified.Episodes),
		logging.Int("extras", outcome.Classified.Extras),
		logging.Int("unresolved", outcome.Classified.Unresolved))

	var placeable, unresolved []classify.Item
	for _, item := range items {
		if item.Kind == classify.KindUnresolved {
			unresolved = append(unresolved, item)
		} else {
			placeable = append(placeable, item)
		}
	}

	groups := group.Build(placeable, group.Options{DefaultSeason: r.cfg.Shows.DefaultSeason})
	p := plan.NewBuilder(moviesDir, showsDir).Build(groups, unresolved)
	outcome.Plan = p
	if opts.OnPlan != nil {
		opts.OnPlan(p)
	}

	outcome.Preflight = preflight.RunAll(r.cfg, preflight.Options{
		SourceDir:     opts.SourceDir,
		MoviesDir:     moviesDir,
		ShowsDir:      showsDir,
		RequiredBytes: requiredBytes(p, opts.DryRun),
		Downmix:       opts.Downmix && !opts.DryRun,
	})
	if !preflight.Passed(outcome.Preflight) {
		return outcome, services.Wrap(services.ErrConfiguration, "preflight", "check",
			preflightFailureDetail(outcome.Preflight), nil)
	}

	runID, err := r.beginHistory(ctx, opts)
	if err != nil {
		return outcome, err
	}
	outcome.RunID = runID

	organizer := organize.New(logging.NewComponentLogger(r.logger, "organize"))
	report, err := organizer.Execute(ctx, p, organize.Options{
		DryRun:   opts.DryRun,
		Progress: opts.Progress,
	})
	outcome.Organize = report
	if err != nil {
		r.finishHistory(ctx, outcome)
		return outcome, err
	}

	if opts.Downmix && !opts.DryRun {
		tReport, err := r.runTranscode(ctx, p, report)
		outcome.Transcode = tReport
		if err != nil {
			r.finishHistory(ctx, outcome)
			return outcome, err
		}
	}

	r.finishHistory(ctx, outcome)

	s := outcome.Summary()
	elapsed := time.Since(started)
	attrs := []logging.Attr{
		logging.Int("copied", s.Copied),
		logging.Int("skipped", s.Skipped),
		logging.Int("failed", s.Failed),
		logging.Int("unresolved", s.Unresolved),
		logging.Int64("bytes_copied", s.BytesCopied),
		logging.Duration("elapsed", elapsed),
	}
	if outcome.Transcode != nil {
		attrs = append(attrs, logging.Int("transcoded", s.Transcoded))
	}
	if s.BytesCopied > 0 && elapsed > 0 {
		attrs = append(attrs, logging.Float64("mib_per_sec",
			float64(s.BytesCopied)/elapsed.Seconds()/(1<<20)))
	}
	r.logger.Info("run finished", logging.Args(attrs...)...)
	return outcome, nil
}

// runTranscode downmixes every successfully copied main file in place.
// Extras are copied verbatim and never transcoded.
func (r *Runner) runTranscode(ctx context.Context, p *plan.Plan, report *organize.Report) (*transcode.Report, error) {
	if r.client == nil {
		return nil, services.Wrap(services.ErrConfiguration, "transcode", "setup", "no ffmpeg client configured", nil)
	}
	entries := make(map[string]plan.Entry, len(p.Entries))
	for _, entry := range p.Entries {
		entries[entry.Dest] = entry
	}
	var tasks []transcode.Task
	for _, res := range report.Results {
		if res.Status == organize.StatusFailed {
			continue
		}
		entry, ok := entries[res.Dest]
		if !ok || !entry.Transcode {
			continue
		}
		tasks = append(tasks, transcode.Task{
			Source: media.NewFile(res.Dest, entry.Source.Size),
			Dest:   res.Dest,
		})
	}
	if len(tasks) == 0 {
		return &transcode.Report{}, nil
	}
	pipe := transcode.NewPipeline(r.client, r.cfg.Transcode.Workers,
		logging.NewComponentLogger(r.logger, "transcode"))
	return pipe.Run(ctx, tasks)
}

func (r *Runner) beginHistory(ctx context.Context, opts Options) (string, error) {
	if r.store == nil {
		return "", nil
	}
	run, err := r.store.BeginRun(ctx, history.Run{
		SourceDir:   opts.SourceDir,
		MoviesDir:   filepath.Join(opts.TargetDir, r.cfg.Library.MoviesDir),
		ShowsDir:    filepath.Join(opts.TargetDir, r.cfg.Library.ShowsDir),
		ContentType: string(opts.ContentType),
		DryRun:      opts.DryRun,
	})
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "history", "begin", "recording run start", err)
	}
	return run.ID, nil
}

// finishHistory persists the final counters and per-file outcomes. History
// failures are logged, never fatal: the library work already happened.
func (r *Runner) finishHistory(ctx context.Context, outcome *Outcome) {
	if r.store == nil || outcome.RunID == "" {
		return
	}
	if err := r.store.RecordFiles(ctx, outcome.RunID, fileRecords(outcome)); err != nil {
		r.logger.Warn("recording file outcomes failed", logging.Error(err))
	}
	if err := r.store.FinishRun(ctx, outcome.RunID, outcome.Summary()); err != nil {
		r.logger.Warn("recording run completion failed", logging.Error(err))
	}
}

func fileRecords(outcome *Outcome) []history.FileRecord {
	var records []history.FileRecord
	if outcome.Plan == nil {
		return records
	}
	kinds := make(map[string]classify.Kind, len(outcome.Plan.Entries))
	for _, entry := range outcome.Plan.Entries {
		kinds[entry.Dest] = entry.Kind
	}
	if outcome.Organize != nil {
		for _, res := range outcome.Organize.Results {
			rec := history.FileRecord{
				SourcePath: res.Source,
				DestPath:   res.Dest,
				Kind:       kinds[res.Dest].String(),
				Status:     string(res.Status),
			}
			if res.Err != nil {
				rec.Detail = res.Err.Error()
			}
			records = append(records, rec)
		}
	}
	for _, item := range outcome.Plan.Unresolved {
		records = append(records, history.FileRecord{
			SourcePath: item.File.Path,
			Kind:       item.Kind.String(),
			Status:     "unresolved",
			Detail:     item.Reason,
		})
	}
	if outcome.Transcode != nil {
		for _, res := range outcome.Transcode.Failures() {
			records = append(records, history.FileRecord{
				SourcePath: res.Task.Source.Path,
				DestPath:   res.Task.Dest,
				Kind:       "transcode",
				Status:     string(res.Status),
				Detail:     res.Err.Error(),
			})
		}
	}
	return records
}

func requiredBytes(p *plan.Plan, dryRun bool) int64 {
	if dryRun {
		return 0
	}
	return p.TotalBytes
}

func preflightFailureDetail(results []preflight.Result) string {
	var failed []string
	for _, res := range results {
		if !res.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", res.Name, res.Detail))
		}
	}
	return strings.Join(failed, "; ")
}

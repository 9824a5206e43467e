// Package transcode runs the bounded audio-downmix pool. Each task feeds one
// source file through ffmpeg into a temp path next to its destination; the
// temp file is renamed into place only after the tool exits cleanly and the
// output verifies, so a killed run never leaves a half-written file visible.
package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/services"
	"curator/internal/services/ffmpeg"
)

// Task is one file to downmix: read Source, land the result at Dest. When
// Dest equals the source path the file is replaced in place, which is how
// the organize flow transcodes freshly copied library files.
type Task struct {
	Source media.File
	Dest   string
}

// Status is the outcome of one task.
type Status string

const (
	StatusTranscoded Status = "transcoded"
	StatusFailed     Status = "failed"
)

// Result records what happened to one task.
type Result struct {
	Task   Task
	Status Status
	Err    error
}

// Report summarizes a pipeline run. Results hold one entry per task in
// completion order.
type Report struct {
	Transcoded int
	Failed     int
	Results    []Result
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Pipeline schedules downmix tasks over a bounded worker pool.
type Pipeline struct {
	client  ffmpeg.Client
	workers int
	logger  *slog.Logger
}

// NewPipeline builds a pipeline running at most workers tasks concurrently.
func NewPipeline(client ffmpeg.Client, workers int, logger *slog.Logger) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{client: client, workers: workers, logger: logger}
}

// Run executes every task. A per-task failure is recorded and the remaining
// tasks keep running; only context cancellation stops the pool early, and it
// returns the partial report with the context error.
func (p *Pipeline) Run(ctx context.Context, tasks []Task) (*Report, error) {
	report := &Report{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, task := range tasks {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			res := p.process(gctx, task)
			mu.Lock()
			report.Results = append(report.Results, res)
			switch res.Status {
			case StatusTranscoded:
				report.Transcoded++
			case StatusFailed:
				report.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	// Wait cancels the derived context on return; only the caller's context
	// says whether the run itself was cancelled.
	if err := ctx.Err(); err != nil {
		return report, services.Wrap(services.ErrTransient, "transcode", "run", "pool cancelled", err)
	}
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, task Task) Result {
	res := Result{Task: task}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0o755); err != nil {
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrTransient, "transcode", "mkdir",
			fmt.Sprintf("creating %s", filepath.Dir(task.Dest)), err)
		return res
	}

	tmp := tempPath(task.Dest)
	p.logger.Info("transcoding",
		logging.String("source", task.Source.Path),
		logging.String("dest", task.Dest))

	err := p.client.Downmix(ctx, task.Source.Path, tmp, func(update ffmpeg.ProgressUpdate) {
		p.logger.Debug("transcode progress",
			logging.String("source", task.Source.Name),
			logging.Duration("out_time", update.OutTime),
			logging.String("speed", update.Speed))
	})
	if err != nil {
		_ = os.Remove(tmp)
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrExternalTool, "transcode", "ffmpeg",
			fmt.Sprintf("downmixing %s", task.Source.Name), err)
		return res
	}

	info, err := os.Stat(tmp)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(tmp)
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrExternalTool, "transcode", "verify",
			fmt.Sprintf("ffmpeg produced no output for %s", task.Source.Name), err)
		return res
	}

	if err := os.Rename(tmp, task.Dest); err != nil {
		_ = os.Remove(tmp)
		res.Status = StatusFailed
		res.Err = services.Wrap(services.ErrTransient, "transcode", "finalize",
			fmt.Sprintf("renaming output for %s", task.Source.Name), err)
		return res
	}
	res.Status = StatusTranscoded
	return res
}

// tempPath is the hidden in-flight name next to dest. The real extension
// stays last so ffmpeg can infer the output container from it.
func tempPath(dest string) string {
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(dest), "."+stem+".tmp"+ext)
}

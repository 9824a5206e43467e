package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/history"
	"curator/internal/plan"
	"curator/internal/run"
	"curator/internal/services/ffmpeg"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var contentType string
	var downmix bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "organize [source] [target]",
		Short: "Scan a source directory and copy its media into the library",
		Long: "Scan source for video files, infer metadata from filenames, and copy each file\n" +
			"into target under Movies/ and Shows/ subtrees. With no arguments the\n" +
			"directories of the most recent run are reused.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ct := classify.ContentType(contentType)
			if !ct.Valid() {
				return fmt.Errorf("invalid --content-type %q (want movies, tv, or auto)", contentType)
			}
			if err := cfg.EnsureStateDir(); err != nil {
				return err
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another curator run is already organizing; wait for it to finish")
			}
			defer lock.Unlock() //nolint:errcheck

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			source, target, err := resolveRunDirs(cmd.Context(), args, store)
			if err != nil {
				return err
			}

			client := ffmpeg.NewCLI(
				ffmpeg.WithBinary(cfg.Transcode.FFmpegBinary),
				ffmpeg.WithLoudness(ffmpeg.Loudness{
					Integrated: cfg.Transcode.IntegratedLoudness,
					TruePeak:   cfg.Transcode.TruePeak,
					Range:      cfg.Transcode.LoudnessRange,
				}),
			)
			runner := run.New(cfg, store, client, ctx.ensureLogger())

			out := cmd.OutOrStdout()
			var bar *progressbar.ProgressBar
			outcome, err := runner.Execute(cmd.Context(), run.Options{
				SourceDir:   source,
				TargetDir:   target,
				ContentType: ct,
				Downmix:     downmix,
				DryRun:      dryRun,
				OnPlan: func(p *plan.Plan) {
					if dryRun {
						printPlan(out, p)
						return
					}
					if stdoutIsTTY() && p.TotalBytes > 0 {
						bar = newCopyBar(p.TotalBytes)
					}
				},
				Progress: func(delta int64) {
					if bar != nil {
						_ = bar.Add64(delta)
					}
				},
			})
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(out)
			}
			if err != nil {
				return err
			}

			printSummary(out, outcome)
			if !outcome.Clean() {
				s := outcome.Summary()
				return fmt.Errorf("run finished with %d failed and %d unresolved files", s.Failed, s.Unresolved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", string(classify.ContentAuto), "Force the content type: movies, tv, or auto")
	cmd.Flags().BoolVar(&downmix, "downmix-audio", false, "Downmix audio to 2-channel FLAC with loudness normalization after copying")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without copying anything")
	return cmd
}

// resolveRunDirs picks the source and target directories: explicit arguments
// win; with none, the directories of the most recent completed run are
// reused.
func resolveRunDirs(ctx context.Context, args []string, store *history.Store) (string, string, error) {
	switch len(args) {
	case 2:
		source, err := config.ExpandPath(args[0])
		if err != nil {
			return "", "", fmt.Errorf("resolve source: %w", err)
		}
		target, err := config.ExpandPath(args[1])
		if err != nil {
			return "", "", fmt.Errorf("resolve target: %w", err)
		}
		return source, target, nil
	case 0:
		last, ok, err := store.LastRun(ctx)
		if err != nil {
			return "", "", fmt.Errorf("look up last run: %w", err)
		}
		if !ok {
			return "", "", errors.New("no previous run to reuse; provide source and target directories")
		}
		return last.SourceDir, last.TargetDir(), nil
	default:
		return "", "", errors.New("provide both source and target directories, or neither")
	}
}

func newCopyBar(totalBytes int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription("copying"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "=", SaucerHead: ">", SaucerPadding: " ", BarStart: "[", BarEnd: "]",
		}),
	)
}

func printPlan(out io.Writer, p *plan.Plan) {
	rows := make([][]string, 0, len(p.Entries))
	for _, entry := range p.Entries {
		rows = append(rows, []string{entry.Source.Path, entry.Dest})
	}
	fmt.Fprintln(out, renderTable([]string{"Source", "Destination"}, rows, nil))
	fmt.Fprintf(out, "%d files, %s total\n", len(p.Entries), humanBytes(p.TotalBytes))
}

func printSummary(out io.Writer, outcome *run.Outcome) {
	s := outcome.Summary()
	rows := [][]string{
		{"Scanned", strconv.Itoa(s.Scanned)},
		{"Movies", strconv.Itoa(outcome.Classified.Movies)},
		{"Episodes", strconv.Itoa(outcome.Classified.Episodes)},
		{"Extras", strconv.Itoa(outcome.Classified.Extras)},
		{"Copied", strconv.Itoa(s.Copied)},
		{"Skipped", strconv.Itoa(s.Skipped)},
		{"Transcoded", strconv.Itoa(s.Transcoded)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Unresolved", strconv.Itoa(s.Unresolved)},
		{"Bytes copied", humanBytes(s.BytesCopied)},
	}
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	if outcome.Organize != nil {
		for _, failure := range outcome.Organize.Failures() {
			fmt.Fprintf(out, "failed: %s: %v\n", failure.Source, failure.Err)
		}
	}
	if outcome.Transcode != nil {
		for _, failure := range outcome.Transcode.Failures() {
			fmt.Fprintf(out, "transcode failed: %s: %v\n", failure.Task.Source.Path, failure.Err)
		}
	}
	if outcome.Plan != nil {
		for _, item := range outcome.Plan.Unresolved {
			fmt.Fprintf(out, "unresolved: %s (%s)\n", item.File.Path, item.Reason)
		}
	}
}

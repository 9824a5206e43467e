package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"curator/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent organize runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					shortID(r.ID),
					formatTimestamp(r.StartedAt),
					r.SourceDir,
					r.TargetDir(),
					yesNo(r.DryRun),
					strconv.Itoa(r.Copied),
					strconv.Itoa(r.Failed),
					strconv.Itoa(r.Unresolved),
					humanBytes(r.BytesCopied),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Source", "Target", "Dry", "Copied", "Failed", "Unresolved", "Bytes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")

	cmd.AddCommand(newHistoryFilesCommand(ctx))
	return cmd
}

func newHistoryFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files <run-id>",
		Short: "Show per-file outcomes of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runID, err := expandRunID(cmd, store, args[0])
			if err != nil {
				return err
			}
			records, err := store.RunFiles(cmd.Context(), runID)
			if err != nil {
				return fmt.Errorf("list run files: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No file outcomes recorded for this run.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{rec.Status, rec.Kind, rec.SourcePath, rec.DestPath, rec.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Kind", "Source", "Destination", "Detail"},
				rows, nil,
			))
			return nil
		},
	}
}

// expandRunID accepts the truncated ids the history table prints and resolves
// them against recent runs.
func expandRunID(cmd *cobra.Command, store *history.Store, id string) (string, error) {
	runs, err := store.RecentRuns(cmd.Context(), 100)
	if err != nil {
		return "", fmt.Errorf("look up runs: %w", err)
	}
	var match string
	for _, r := range runs {
		if r.ID == id {
			return r.ID, nil
		}
		if len(id) >= 4 && len(r.ID) >= len(id) && r.ID[:len(id)] == id {
			if match != "" {
				return "", fmt.Errorf("run id %q is ambiguous", id)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no run with id %q", id)
	}
	return match, nil
}

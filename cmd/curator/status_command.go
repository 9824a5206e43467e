package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration paths and external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			configPath := ""
			if _, path, exists, err := config.Load(configPathFlag(cmd)); err == nil {
				configPath = path
				if !exists {
					configPath += " (defaults in use)"
				}
			}

			historyState := "not created yet"
			if _, err := os.Stat(cfg.HistoryDBPath()); err == nil {
				historyState = cfg.HistoryDBPath()
			}

			rows := [][]string{
				{"Config", configPath},
				{"State directory", cfg.Paths.StateDir},
				{"History database", historyState},
				{"Movies subdir", cfg.Library.MoviesDir},
				{"Shows subdir", cfg.Library.ShowsDir},
				{"Transcode workers", fmt.Sprintf("%d", cfg.Transcode.Workers)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))

			statuses := deps.CheckBinaries([]deps.Requirement{{
				Name:        "FFmpeg",
				Command:     cfg.Transcode.FFmpegBinary,
				Description: "Required for --downmix-audio",
			}})
			toolRows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "available"
				if !s.Available {
					state = s.Detail
				}
				toolRows = append(toolRows, []string{s.Name, s.Command, state, s.Description})
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Notes"}, toolRows, nil))
			return nil
		},
	}
}

func configPathFlag(cmd *cobra.Command) string {
	if flag := cmd.InheritedFlags().Lookup("config"); flag != nil {
		return flag.Value.String()
	}
	return ""
}

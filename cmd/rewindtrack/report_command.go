package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rewindtrack/internal/config"
	"rewindtrack/internal/tracker"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Rebuild charts and the dashboard from stored history without fetching",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(cfg *config.Config, tr *tracker.Tracker) error {
				if err := tr.RenderFromHistory(cmd.Context()); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Dashboard rebuilt at %s\n", cfg.DashboardHTML())
				return nil
			})
		},
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rewindtrack/internal/config"
	"rewindtrack/internal/tracker"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch posts, snapshot comment counts, and write all outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(cfg *config.Config, tr *tracker.Tracker) error {
				summary, err := tr.Run(cmd.Context())
				if err != nil {
					if errors.Is(err, tracker.ErrRunInProgress) {
						return fmt.Errorf("another run holds the lock at %s; wait for it to finish", cfg.LockFile())
					}
					return err
				}
				printRunSummary(cmd, cfg, summary)
				return nil
			})
		},
	}
}

func printRunSummary(cmd *cobra.Command, cfg *config.Config, summary *tracker.RunSummary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader(fmt.Sprintf("%s tracking run", cfg.Show.Name), colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Posts found", statusInfo, fmt.Sprintf("%d", len(summary.Posts)), colorize))
	fmt.Fprintln(out, renderStatusLine("Episode threads", statusInfo, fmt.Sprintf("%d", len(summary.Episodes)), colorize))
	fmt.Fprintln(out, renderStatusLine("Total comments", statusInfo, fmt.Sprintf("%d", summary.TotalComments()), colorize))

	if summary.Trailer != nil {
		fmt.Fprintln(out, renderStatusLine("Trailer", statusOK, summary.Trailer.Title, colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Trailer", statusWarn, "none matched", colorize))
	}

	chartStatus := statusOK
	chartMessage := "episode and non-episode charts rendered"
	switch {
	case summary.EpisodeChart && !summary.NonEpisodeChart:
		chartMessage = "episode chart rendered"
	case !summary.EpisodeChart && summary.NonEpisodeChart:
		chartMessage = "non-episode chart rendered"
	case !summary.EpisodeChart && !summary.NonEpisodeChart:
		chartStatus = statusWarn
		chartMessage = "need snapshots from at least two runs"
	}
	fmt.Fprintln(out, renderStatusLine("Charts", chartStatus, chartMessage, colorize))
	fmt.Fprintln(out, renderStatusLine("Dashboard", statusOK, cfg.DashboardHTML(), colorize))

	if len(summary.Episodes) > 0 {
		fmt.Fprintln(out)
		headers := []string{"Episode", "Title", "Comments", "Score"}
		rows := make([][]string, 0, len(summary.Episodes))
		for _, p := range summary.Episodes {
			rows = append(rows, []string{
				p.EpisodeCode,
				p.Title,
				fmt.Sprintf("%d", p.NumComments),
				fmt.Sprintf("%d", p.Score),
			})
		}
		fmt.Fprintln(out, renderTable(out, headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
	}
}

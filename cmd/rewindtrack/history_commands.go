package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rewindtrack/internal/config"
	"rewindtrack/internal/history"
	"rewindtrack/internal/textutil"
)

const listTitleRunes = 60

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and export the snapshot history",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryRecentCommand(ctx))
	historyCmd.AddCommand(newHistoryStatsCommand(ctx))
	historyCmd.AddCommand(newHistoryExportCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show each tracked post at its most recent snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				latest, err := store.Latest(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(latest) == 0 {
					fmt.Fprintln(out, "No snapshots recorded yet; run `rewindtrack run` first")
					return nil
				}
				if limit > 0 && len(latest) > limit {
					latest = latest[:limit]
				}

				headers := []string{"Kind", "Episode", "Subreddit", "Title", "Comments", "Score", "Last Seen"}
				rows := make([][]string, 0, len(latest))
				for _, snap := range latest {
					rows = append(rows, []string{
						snapshotKind(snap),
						snap.EpisodeCode,
						snap.Subreddit,
						textutil.Truncate(snap.Title, listTitleRunes),
						fmt.Sprintf("%d", snap.NumComments),
						fmt.Sprintf("%d", snap.Score),
						snap.TakenAt.UTC().Format("2006-01-02 15:04"),
					})
				}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of posts to list (0 for all)")
	return cmd
}

func newHistoryRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently appended snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				snapshots, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(snapshots) == 0 {
					fmt.Fprintln(out, "No snapshots recorded yet; run `rewindtrack run` first")
					return nil
				}

				headers := []string{"Taken (UTC)", "Run", "Kind", "Episode", "Title", "Comments"}
				rows := make([][]string, 0, len(snapshots))
				for _, snap := range snapshots {
					rows = append(rows, []string{
						snap.TakenAt.UTC().Format("2006-01-02 15:04"),
						shortRunID(snap.RunID),
						snapshotKind(snap),
						snap.EpisodeCode,
						textutil.Truncate(snap.Title, listTitleRunes),
						fmt.Sprintf("%d", snap.NumComments),
					})
				}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of snapshots to show")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the snapshot history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			exists, err := history.Exists(cfg.HistoryDB())
			if err != nil {
				return err
			}
			if !exists {
				fmt.Fprintln(cmd.OutOrStdout(), "No history database yet; run `rewindtrack run` first")
				return nil
			}
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				for _, line := range renderSectionHeader("Snapshot history", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Store", statusInfo, store.Path(), colorize))
				fmt.Fprintln(out, renderStatusLine("Snapshots", statusInfo, fmt.Sprintf("%d", stats.Snapshots), colorize))
				fmt.Fprintln(out, renderStatusLine("Tracked posts", statusInfo, fmt.Sprintf("%d", stats.Posts), colorize))
				fmt.Fprintln(out, renderStatusLine("Runs", statusInfo, fmt.Sprintf("%d", stats.Runs), colorize))
				if stats.Snapshots > 0 {
					span := fmt.Sprintf("%s to %s",
						stats.First.UTC().Format(time.RFC3339),
						stats.Last.UTC().Format(time.RFC3339))
					fmt.Fprintln(out, renderStatusLine("Covered", statusInfo, span, colorize))
				}
				return nil
			})
		},
	}
}

func newHistoryExportCommand(ctx *commandContext) *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full snapshot history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				target := strings.TrimSpace(targetPath)
				if target == "" {
					target = cfg.HistoryCSV()
				} else {
					expanded, err := config.ExpandPath(target)
					if err != nil {
						return fmt.Errorf("resolve export path: %w", err)
					}
					target = expanded
				}
				if err := store.ExportCSV(cmd.Context(), target); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote history to %s\n", target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the CSV export")
	return cmd
}

// shortRunID keeps the table narrow; the full uuid lives in the store and
// the logs.
func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func snapshotKind(snap history.Snapshot) string {
	switch {
	case snap.IsEpisode:
		return "Episode"
	case snap.IsTrailer:
		return "Trailer"
	default:
		return "Other"
	}
}

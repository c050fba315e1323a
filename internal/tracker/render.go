package tracker

import (
	"context"
	"fmt"
	"path/filepath"

	"rewindtrack/internal/history"
	"rewindtrack/internal/reddit"
	"rewindtrack/internal/report"
)

// writeOutputs produces every file a run leaves behind: the three post CSVs,
// the history CSV export, both growth charts, and the dashboard.
func (t *Tracker) writeOutputs(ctx context.Context, summary *RunSummary) error {
	cfg := t.cfg

	if err := report.WriteAllPosts(cfg.AllPostsCSV(), summary.Posts); err != nil {
		return err
	}
	if err := report.WriteEpisodePosts(cfg.EpisodePostsCSV(), summary.Episodes); err != nil {
		return err
	}
	selected := summary.Others
	if summary.Trailer != nil {
		selected = append([]reddit.Post{*summary.Trailer}, summary.Others...)
	}
	if err := report.WriteSelectedPosts(cfg.SelectedPostsCSV(), selected); err != nil {
		return err
	}
	if err := t.store.ExportCSV(ctx, cfg.HistoryCSV()); err != nil {
		return err
	}

	episodeChart, nonEpisodeChart, err := t.renderCharts(ctx)
	if err != nil {
		return err
	}
	summary.EpisodeChart = episodeChart
	summary.NonEpisodeChart = nonEpisodeChart

	data := report.DashboardData{
		ShowName:       cfg.Show.Name,
		Subreddits:     cfg.Show.Subreddits,
		QueryTerms:     cfg.Show.QueryTerms,
		GeneratedAt:    t.now().UTC(),
		Sort:           cfg.Search.Sort,
		TimeFilter:     cfg.Search.TimeFilter,
		TotalPosts:     len(summary.Posts),
		EpisodeThreads: len(summary.Episodes),
		TrailerHits:    summary.TrailerHits(),
		TotalComments:  summary.TotalComments(),
		HistoryCSV:     filepath.Base(cfg.HistoryCSV()),
		Outputs: []string{
			filepath.Base(cfg.AllPostsCSV()),
			filepath.Base(cfg.EpisodePostsCSV()),
			filepath.Base(cfg.SelectedPostsCSV()),
		},
	}
	if summary.Trailer != nil {
		view := report.ViewFromPost(*summary.Trailer)
		data.Trailer = &view
	}
	for _, p := range summary.Episodes {
		data.Episodes = append(data.Episodes, report.ViewFromPost(p))
	}
	for _, p := range summary.Others {
		data.Others = append(data.Others, report.ViewFromPost(p))
	}
	if episodeChart {
		data.EpisodeChart = filepath.Base(cfg.EpisodeChartPNG())
	}
	if nonEpisodeChart {
		data.NonEpisodeChart = filepath.Base(cfg.NonEpisodeChartPNG())
	}

	if err := report.WriteDashboard(cfg.DashboardHTML(), data); err != nil {
		return err
	}
	t.logger.Info("outputs written",
		"dashboard", cfg.DashboardHTML(),
		"episode_chart", episodeChart,
		"non_episode_chart", nonEpisodeChart)
	return nil
}

func (t *Tracker) renderCharts(ctx context.Context) (bool, bool, error) {
	series, err := t.store.SeriesByPost(ctx)
	if err != nil {
		return false, false, fmt.Errorf("load series: %w", err)
	}
	episodeChart, err := report.RenderEpisodeChart(t.cfg.EpisodeChartPNG(), t.cfg.Show.Name, series)
	if err != nil {
		return false, false, err
	}
	nonEpisodeChart, err := report.RenderNonEpisodeChart(t.cfg.NonEpisodeChartPNG(), t.cfg.Show.Name, series)
	if err != nil {
		return false, false, err
	}
	if !episodeChart && !nonEpisodeChart {
		t.logger.Warn("not enough history for charts; re-run on a schedule to build snapshots")
	}
	return episodeChart, nonEpisodeChart, nil
}

// RenderFromHistory rebuilds the charts and dashboard from stored snapshots
// without touching the network. The dashboard tables reflect each post's most
// recent snapshot.
func (t *Tracker) RenderFromHistory(ctx context.Context) error {
	latest, err := t.store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load latest snapshots: %w", err)
	}
	if len(latest) == 0 {
		return fmt.Errorf("history store %s has no snapshots yet; run the tracker first", t.store.Path())
	}

	episodeChart, nonEpisodeChart, err := t.renderCharts(ctx)
	if err != nil {
		return err
	}
	if err := t.store.ExportCSV(ctx, t.cfg.HistoryCSV()); err != nil {
		return err
	}

	data := report.DashboardData{
		ShowName:    t.cfg.Show.Name,
		Subreddits:  t.cfg.Show.Subreddits,
		QueryTerms:  t.cfg.Show.QueryTerms,
		GeneratedAt: t.now().UTC(),
		Sort:        t.cfg.Search.Sort,
		TimeFilter:  t.cfg.Search.TimeFilter,
		TotalPosts:  len(latest),
		HistoryCSV:  filepath.Base(t.cfg.HistoryCSV()),
		Outputs: []string{
			filepath.Base(t.cfg.AllPostsCSV()),
			filepath.Base(t.cfg.EpisodePostsCSV()),
			filepath.Base(t.cfg.SelectedPostsCSV()),
		},
	}

	var bestTrailer *history.Snapshot
	others := make([]report.PostView, 0, len(latest))
	for i := range latest {
		snap := latest[i]
		data.TotalComments += snap.NumComments
		switch {
		case snap.IsEpisode:
			data.EpisodeThreads++
			data.Episodes = append(data.Episodes, report.ViewFromSnapshot(snap))
		case snap.IsTrailer:
			data.TrailerHits++
			if bestTrailer == nil {
				bestTrailer = &latest[i]
			}
		default:
			others = append(others, report.ViewFromSnapshot(snap))
		}
	}
	if bestTrailer != nil {
		view := report.ViewFromSnapshot(*bestTrailer)
		data.Trailer = &view
	}
	if limit := t.cfg.Selection.OtherPosts; limit > 0 && len(others) > limit {
		others = others[:limit]
	}
	data.Others = others
	if episodeChart {
		data.EpisodeChart = filepath.Base(t.cfg.EpisodeChartPNG())
	}
	if nonEpisodeChart {
		data.NonEpisodeChart = filepath.Base(t.cfg.NonEpisodeChartPNG())
	}

	return report.WriteDashboard(t.cfg.DashboardHTML(), data)
}

package history

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "show_history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func snapshotAt(run string, at time.Time, postName string, comments int) Snapshot {
	return Snapshot{
		RunID:       run,
		TakenAt:     at,
		PostID:      postName[3:],
		PostName:    postName,
		Subreddit:   "television",
		Title:       "Title for " + postName,
		Permalink:   "https://www.reddit.com/r/television/comments/" + postName[3:] + "/",
		NumComments: comments,
		Score:       comments / 2,
	}
}

func TestAppendAndSeries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := snapshotAt("run-1", base, "t3_abc", 10)
	first.EpisodeCode = "1x02"
	first.IsEpisode = true
	if err := store.Append(ctx, []Snapshot{first, snapshotAt("run-1", base, "t3_def", 3)}); err != nil {
		t.Fatalf("Append run-1: %v", err)
	}

	second := snapshotAt("run-2", base.Add(time.Hour), "t3_abc", 25)
	second.EpisodeCode = "1x02"
	second.IsEpisode = true
	if err := store.Append(ctx, []Snapshot{second, snapshotAt("run-2", base.Add(time.Hour), "t3_def", 9)}); err != nil {
		t.Fatalf("Append run-2: %v", err)
	}

	series, err := store.SeriesByPost(ctx)
	if err != nil {
		t.Fatalf("SeriesByPost: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	episode := series[0]
	if episode.PostName != "t3_abc" || !episode.IsEpisode || episode.EpisodeCode != "1x02" {
		t.Fatalf("unexpected series: %+v", episode)
	}
	if len(episode.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(episode.Points))
	}
	if episode.Points[0].NumComments != 10 || episode.Points[1].NumComments != 25 {
		t.Fatalf("points out of order: %+v", episode.Points)
	}
	if !episode.Points[1].At.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected point time: %v", episode.Points[1].At)
	}
}

func TestLatestPicksNewestPerPost(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Append(ctx, []Snapshot{
		snapshotAt("run-1", base, "t3_abc", 10),
		snapshotAt("run-1", base, "t3_def", 50),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, []Snapshot{
		snapshotAt("run-2", base.Add(time.Hour), "t3_abc", 99),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected one row per post, got %d", len(latest))
	}
	// ordered by comments descending
	if latest[0].PostName != "t3_abc" || latest[0].NumComments != 99 {
		t.Fatalf("expected newest t3_abc snapshot first, got %+v", latest[0])
	}
	if latest[1].PostName != "t3_def" || latest[1].NumComments != 50 {
		t.Fatalf("unexpected second row: %+v", latest[1])
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats on empty store: %v", err)
	}
	if stats.Snapshots != 0 || stats.Posts != 0 || stats.Runs != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Append(ctx, []Snapshot{
		snapshotAt("run-1", base, "t3_abc", 1),
		snapshotAt("run-1", base, "t3_def", 2),
		snapshotAt("run-2", base.Add(time.Hour), "t3_abc", 3),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Snapshots != 3 || stats.Posts != 2 || stats.Runs != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.First.Equal(base) || !stats.Last.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected time range: %+v", stats)
	}
}

func TestExportCSV(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := snapshotAt("run-1", base, "t3_abc", 7)
	snap.EpisodeCode = "E03"
	snap.IsEpisode = true
	if err := store.Append(ctx, []Snapshot{snap}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	path := filepath.Join(t.TempDir(), "history.csv")
	if err := store.ExportCSV(ctx, path); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "snapshot_utc" || records[0][9] != "num_comments" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	row := records[1]
	if row[0] != "2026-03-01T12:00:00Z" || row[4] != "E03" || row[5] != "1" || row[9] != "7" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Append(context.Background(), []Snapshot{
		snapshotAt("run-1", time.Now().UTC().Truncate(time.Second), "t3_abc", 1),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	stats, err := reopened.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Snapshots != 1 {
		t.Fatalf("expected persisted snapshot, got %+v", stats)
	}

	exists, err := Exists(path)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
	exists, err = Exists(filepath.Join(dir, "missing.db"))
	if err != nil || exists {
		t.Fatalf("Exists for missing file = %v, %v", exists, err)
	}
}

package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// historyHeader matches the column layout the tracker has always exported, so
// downstream spreadsheets keep working across the SQLite migration.
var historyHeader = []string{
	"snapshot_utc", "post_id", "post_name", "subreddit",
	"episode_code", "is_episode", "is_trailer",
	"title", "permalink", "num_comments",
}

// ExportCSV rewrites the full snapshot history to path. The file content is
// identical to what per-run appending would have produced: one header row,
// then every snapshot in time order.
func (s *Store) ExportCSV(ctx context.Context, path string) error {
	snapshots, err := s.All(ctx)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create history export: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(historyHeader); err != nil {
		return fmt.Errorf("write history header: %w", err)
	}
	for _, snap := range snapshots {
		record := []string{
			snap.TakenAt.UTC().Format(time.RFC3339),
			snap.PostID,
			snap.PostName,
			snap.Subreddit,
			snap.EpisodeCode,
			strconv.Itoa(boolToInt(snap.IsEpisode)),
			strconv.Itoa(boolToInt(snap.IsTrailer)),
			snap.Title,
			snap.Permalink,
			strconv.Itoa(snap.NumComments),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write history row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush history export: %w", err)
	}
	return file.Close()
}

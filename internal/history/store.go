package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Snapshot is one timestamped recording of a post's comment count together
// with the classification that was current at snapshot time.
type Snapshot struct {
	RunID       string
	TakenAt     time.Time
	PostID      string
	PostName    string
	Subreddit   string
	EpisodeCode string
	IsEpisode   bool
	IsTrailer   bool
	Title       string
	Permalink   string
	NumComments int
	Score       int
}

// Point is one sample in a post's comment-count time series.
type Point struct {
	At          time.Time
	NumComments int
}

// Series is the full comment-count history of one post. The classification
// fields come from the post's first snapshot, so a post stays in the group it
// was first seen in even if a later title edit changes how it classifies.
type Series struct {
	PostName    string
	EpisodeCode string
	IsEpisode   bool
	IsTrailer   bool
	Title       string
	Points      []Point
}

// Stats summarizes the stored history for diagnostics and CLI output.
type Stats struct {
	Snapshots int
	Posts     int
	Runs      int
	First     time.Time
	Last      time.Time
}

// Store persists comment-count snapshots in SQLite. Rows are append-only;
// nothing in the tracker updates or deletes a snapshot once written.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the snapshot database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one run's snapshots in a single transaction.
func (s *Store) Append(ctx context.Context, snapshots []Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshots (
        run_id, snapshot_utc, post_id, post_name, subreddit,
        episode_code, is_episode, is_trailer, title, permalink,
        num_comments, score
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		if _, err := stmt.ExecContext(ctx,
			snap.RunID,
			snap.TakenAt.UTC().Format(time.RFC3339),
			snap.PostID,
			snap.PostName,
			snap.Subreddit,
			nullableString(snap.EpisodeCode),
			boolToInt(snap.IsEpisode),
			boolToInt(snap.IsTrailer),
			snap.Title,
			nullableString(snap.Permalink),
			snap.NumComments,
			snap.Score,
		); err != nil {
			return fmt.Errorf("insert snapshot for %s: %w", snap.PostName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshots: %w", err)
	}
	return nil
}

const snapshotColumns = "run_id, snapshot_utc, post_id, post_name, subreddit, episode_code, is_episode, is_trailer, title, permalink, num_comments, score"

// All returns every snapshot ordered by time then post name.
func (s *Store) All(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots ORDER BY snapshot_utc, post_name`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

// Recent returns up to limit snapshots, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots ORDER BY snapshot_utc DESC, post_name LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent snapshots: %w", err)
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

// Latest returns the most recent snapshot of every tracked post.
func (s *Store) Latest(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+qualifiedColumns("s")+`
        FROM snapshots s
        JOIN (
            SELECT post_name, MAX(id) AS latest_id
            FROM snapshots GROUP BY post_name
        ) t ON s.post_name = t.post_name AND s.id = t.latest_id
        ORDER BY s.num_comments DESC, s.score DESC`)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshots: %w", err)
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

// SeriesByPost reconstructs the per-post time series for plotting, ordered by
// post name for stable chart output.
func (s *Store) SeriesByPost(ctx context.Context) ([]Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots ORDER BY post_name, snapshot_utc, id`)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	var series []Series
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 || series[len(series)-1].PostName != snap.PostName {
			series = append(series, Series{
				PostName:    snap.PostName,
				EpisodeCode: snap.EpisodeCode,
				IsEpisode:   snap.IsEpisode,
				IsTrailer:   snap.IsTrailer,
				Title:       snap.Title,
			})
		}
		last := &series[len(series)-1]
		last.Points = append(last.Points, Point{At: snap.TakenAt, NumComments: snap.NumComments})
	}
	return series, rows.Err()
}

// Stats aggregates snapshot counts and the covered time range.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		stats    Stats
		firstRaw sql.NullString
		lastRaw  sql.NullString
	)
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1), COUNT(DISTINCT post_name), COUNT(DISTINCT run_id),
               MIN(snapshot_utc), MAX(snapshot_utc)
        FROM snapshots`)
	if err := row.Scan(&stats.Snapshots, &stats.Posts, &stats.Runs, &firstRaw, &lastRaw); err != nil {
		return Stats{}, fmt.Errorf("history stats: %w", err)
	}
	if firstRaw.Valid {
		if t, err := time.Parse(time.RFC3339, firstRaw.String); err == nil {
			stats.First = t
		}
	}
	if lastRaw.Valid {
		if t, err := time.Parse(time.RFC3339, lastRaw.String); err == nil {
			stats.Last = t
		}
	}
	return stats, nil
}

func collectSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	var snapshots []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func scanSnapshot(scanner interface{ Scan(dest ...any) error }) (Snapshot, error) {
	var (
		snap        Snapshot
		takenRaw    string
		episodeCode sql.NullString
		permalink   sql.NullString
		isEpisode   int
		isTrailer   int
	)
	if err := scanner.Scan(
		&snap.RunID,
		&takenRaw,
		&snap.PostID,
		&snap.PostName,
		&snap.Subreddit,
		&episodeCode,
		&isEpisode,
		&isTrailer,
		&snap.Title,
		&permalink,
		&snap.NumComments,
		&snap.Score,
	); err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}
	snap.EpisodeCode = episodeCode.String
	snap.Permalink = permalink.String
	snap.IsEpisode = isEpisode != 0
	snap.IsTrailer = isTrailer != 0
	taken, err := time.Parse(time.RFC3339, takenRaw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot time %q: %w", takenRaw, err)
	}
	snap.TakenAt = taken
	return snap, nil
}

func qualifiedColumns(alias string) string {
	return alias + ".run_id, " + alias + ".snapshot_utc, " + alias + ".post_id, " +
		alias + ".post_name, " + alias + ".subreddit, " + alias + ".episode_code, " +
		alias + ".is_episode, " + alias + ".is_trailer, " + alias + ".title, " +
		alias + ".permalink, " + alias + ".num_comments, " + alias + ".score"
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// Exists reports whether a history database is already present at path.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat history database: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("history database path %q is a directory", path)
	}
	return true, nil
}

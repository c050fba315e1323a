package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"rewindtrack/internal/reddit"
)

func createdISO(p reddit.Post) string {
	if p.Created.IsZero() {
		return ""
	}
	return p.Created.UTC().Format(time.RFC3339)
}

// WriteAllPosts exports every post found in this run.
func WriteAllPosts(path string, posts []reddit.Post) error {
	header := []string{
		"id", "subreddit", "created_utc", "created_iso", "title",
		"episode_code", "is_trailer", "num_comments", "score",
		"author", "permalink", "url",
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			p.Subreddit,
			strconv.FormatInt(p.CreatedUTC, 10),
			createdISO(p),
			p.Title,
			p.EpisodeCode,
			boolFlag(p.IsTrailer),
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Author,
			p.Permalink,
			p.URL,
		})
	}
	return writeCSV(path, header, rows)
}

// WriteEpisodePosts exports the detected episode-discussion threads.
func WriteEpisodePosts(path string, posts []reddit.Post) error {
	header := []string{
		"episode_code", "subreddit", "id", "created_iso", "title",
		"num_comments", "score", "permalink",
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.EpisodeCode,
			p.Subreddit,
			p.ID,
			createdISO(p),
			p.Title,
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Permalink,
		})
	}
	return writeCSV(path, header, rows)
}

// WriteSelectedPosts exports the curated subset (trailer pick plus top
// other posts).
func WriteSelectedPosts(path string, posts []reddit.Post) error {
	header := []string{
		"type", "subreddit", "episode_code", "id", "created_iso", "title",
		"num_comments", "score", "permalink",
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.Kind(),
			p.Subreddit,
			p.EpisodeCode,
			p.ID,
			createdISO(p),
			p.Title,
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Permalink,
		})
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

func boolFlag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

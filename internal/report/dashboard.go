package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"rewindtrack/internal/history"
	"rewindtrack/internal/reddit"
)

//go:embed dashboard.html.tmpl
var dashboardTemplate string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardTemplate))

// PostView is one row in a dashboard table.
type PostView struct {
	Kind        string
	Subreddit   string
	EpisodeCode string
	Title       string
	Permalink   string
	CreatedISO  string
	NumComments int
	Score       int
}

// ViewFromPost converts a fetched post into its dashboard row.
func ViewFromPost(p reddit.Post) PostView {
	return PostView{
		Kind:        p.Kind(),
		Subreddit:   p.Subreddit,
		EpisodeCode: p.EpisodeCode,
		Title:       p.Title,
		Permalink:   p.Permalink,
		CreatedISO:  createdISO(p),
		NumComments: p.NumComments,
		Score:       p.Score,
	}
}

// ViewFromSnapshot converts a stored snapshot into its dashboard row. Used
// when re-rendering the dashboard from history without a fresh fetch.
func ViewFromSnapshot(s history.Snapshot) PostView {
	kind := "Other"
	switch {
	case s.IsEpisode:
		kind = "Episode"
	case s.IsTrailer:
		kind = "Trailer"
	}
	return PostView{
		Kind:        kind,
		Subreddit:   s.Subreddit,
		EpisodeCode: s.EpisodeCode,
		Title:       s.Title,
		Permalink:   s.Permalink,
		CreatedISO:  s.TakenAt.UTC().Format(time.RFC3339),
		NumComments: s.NumComments,
		Score:       s.Score,
	}
}

// DashboardData feeds the dashboard template. Chart fields hold file
// basenames relative to the dashboard and are empty when a chart was not
// rendered.
type DashboardData struct {
	ShowName        string
	Subreddits      []string
	QueryTerms      []string
	GeneratedAt     time.Time
	Sort            string
	TimeFilter      string
	TotalPosts      int
	EpisodeThreads  int
	TrailerHits     int
	TotalComments   int
	Trailer         *PostView
	Episodes        []PostView
	Others          []PostView
	EpisodeChart    string
	NonEpisodeChart string
	HistoryCSV      string
	Outputs         []string
}

// WriteDashboard renders the static HTML dashboard to path.
func WriteDashboard(path string, data DashboardData) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	defer file.Close()

	if err := dashboardTmpl.Execute(file, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return file.Close()
}

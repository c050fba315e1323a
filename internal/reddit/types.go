package reddit

import "time"

// Post is one search hit from the Reddit public JSON endpoint, normalized for
// the tracker. EpisodeCode and IsTrailer are derived later by classification;
// the client leaves them zero.
type Post struct {
	ID          string
	Name        string
	Subreddit   string
	CreatedUTC  int64
	Created     time.Time
	Title       string
	Permalink   string
	URL         string
	Author      string
	Score       int
	NumComments int

	EpisodeCode string
	IsTrailer   bool
}

// IsEpisode reports whether classification found an episode code.
func (p Post) IsEpisode() bool {
	return p.EpisodeCode != ""
}

// Kind labels the post for exports and the dashboard.
func (p Post) Kind() string {
	switch {
	case p.IsEpisode():
		return "Episode"
	case p.IsTrailer:
		return "Trailer"
	default:
		return "Other"
	}
}

// listing models the subset of the Reddit search payload the tracker reads.
type listing struct {
	Data struct {
		Children []struct {
			Data listingPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingPost struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	URL         string  `json:"url"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

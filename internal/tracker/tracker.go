package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"rewindtrack/internal/config"
	"rewindtrack/internal/episode"
	"rewindtrack/internal/history"
	"rewindtrack/internal/reddit"
)

// ErrRunInProgress is returned when another tracker invocation holds the run
// lock, typically an overlapping cron schedule.
var ErrRunInProgress = errors.New("another tracker run is in progress")

// Searcher is the search surface the tracker needs from the Reddit client.
type Searcher interface {
	Search(ctx context.Context, subreddit, query string, opts reddit.SearchOptions) ([]reddit.Post, error)
}

// Tracker executes one full tracking run: fetch, classify, snapshot, export,
// render. Instances are single-use per process; state between runs lives in
// the history store and the output files.
type Tracker struct {
	cfg     *config.Config
	client  Searcher
	store   *history.Store
	logger  *slog.Logger
	matcher episode.TrailerMatcher

	now func() time.Time
}

// New builds a tracker over the given collaborators.
func New(cfg *config.Config, client Searcher, store *history.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		cfg:     cfg,
		client:  client,
		store:   store,
		logger:  logger,
		matcher: episode.NewTrailerMatcher(cfg.Show.Name, cfg.Show.QueryTerms, cfg.Selection.TrailerKeywords),
		now:     time.Now,
	}
}

// RunSummary reports what a tracking run found and produced.
type RunSummary struct {
	RunID           string
	TakenAt         time.Time
	Posts           []reddit.Post
	Episodes        []reddit.Post
	Trailer         *reddit.Post
	Others          []reddit.Post
	EpisodeChart    bool
	NonEpisodeChart bool
}

// TotalComments sums the comment counts across all posts in the run.
func (s RunSummary) TotalComments() int {
	total := 0
	for _, p := range s.Posts {
		total += p.NumComments
	}
	return total
}

// TrailerHits counts trailer-flagged posts in the run.
func (s RunSummary) TrailerHits() int {
	hits := 0
	for _, p := range s.Posts {
		if p.IsTrailer {
			hits++
		}
	}
	return hits
}

// Run executes one complete tracking pass. The run lock in the data dir
// guards against overlapping scheduled invocations.
func (t *Tracker) Run(ctx context.Context) (*RunSummary, error) {
	lock := flock.New(t.cfg.LockFile())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	summary := &RunSummary{
		RunID:   uuid.NewString(),
		TakenAt: t.now().UTC(),
	}
	logger := t.logger.With("run_id", summary.RunID)
	logger.Info("starting tracking run",
		"show", t.cfg.Show.Name,
		"subreddits", len(t.cfg.Show.Subreddits),
		"terms", len(t.cfg.Show.QueryTerms))

	posts, err := t.fetchPosts(ctx)
	if err != nil {
		return nil, err
	}
	summary.Posts = posts

	summary.Episodes = EpisodePosts(posts)
	if trailer, ok := PickTrailer(posts); ok {
		summary.Trailer = &trailer
	}
	summary.Others = PickOtherPosts(posts, t.cfg.Selection.OtherPosts)

	if err := t.appendSnapshots(ctx, summary); err != nil {
		return nil, err
	}
	if err := t.writeOutputs(ctx, summary); err != nil {
		return nil, err
	}

	logger.Info("tracking run complete",
		"posts", len(summary.Posts),
		"episode_threads", len(summary.Episodes),
		"trailer_found", summary.Trailer != nil)
	return summary, nil
}

// classify derives the episode code and trailer flag for one post.
func (t *Tracker) classify(post reddit.Post) reddit.Post {
	post.EpisodeCode = episode.ExtractCode(post.Title)
	post.IsTrailer = t.matcher.Matches(post.Title)
	return post
}

func (t *Tracker) appendSnapshots(ctx context.Context, summary *RunSummary) error {
	snapshots := make([]history.Snapshot, 0, len(summary.Posts))
	for _, p := range summary.Posts {
		snapshots = append(snapshots, history.Snapshot{
			RunID:       summary.RunID,
			TakenAt:     summary.TakenAt,
			PostID:      p.ID,
			PostName:    p.Name,
			Subreddit:   p.Subreddit,
			EpisodeCode: p.EpisodeCode,
			IsEpisode:   p.IsEpisode(),
			IsTrailer:   p.IsTrailer,
			Title:       p.Title,
			Permalink:   p.Permalink,
			NumComments: p.NumComments,
			Score:       p.Score,
		})
	}
	if err := t.store.Append(ctx, snapshots); err != nil {
		return fmt.Errorf("append snapshots: %w", err)
	}
	return nil
}

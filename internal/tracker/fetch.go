package tracker

import (
	"context"
	"fmt"
	"sort"

	"rewindtrack/internal/reddit"
)

// fetchPosts queries every subreddit for every configured term, de-duplicates
// by post id within the run, classifies each post, and returns the result
// newest first.
func (t *Tracker) fetchPosts(ctx context.Context) ([]reddit.Post, error) {
	opts := reddit.SearchOptions{
		Sort:       t.cfg.Search.Sort,
		TimeFilter: t.cfg.Search.TimeFilter,
		Limit:      t.cfg.Search.Limit,
	}

	var posts []reddit.Post
	seen := make(map[string]struct{})

	for _, subreddit := range t.cfg.Show.Subreddits {
		for _, term := range t.cfg.Show.QueryTerms {
			t.logger.Info("searching subreddit",
				"subreddit", subreddit, "term", term,
				"limit", opts.Limit, "sort", opts.Sort, "time_filter", opts.TimeFilter)
			found, err := t.client.Search(ctx, subreddit, term, opts)
			if err != nil {
				return nil, fmt.Errorf("search r/%s for %q: %w", subreddit, term, err)
			}
			for _, post := range found {
				if _, ok := seen[post.ID]; ok {
					continue
				}
				seen[post.ID] = struct{}{}
				posts = append(posts, t.classify(post))
			}
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedUTC > posts[j].CreatedUTC
	})
	t.logger.Info("search complete", "unique_posts", len(posts))
	return posts, nil
}

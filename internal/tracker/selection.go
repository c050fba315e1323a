package tracker

import (
	"sort"

	"rewindtrack/internal/reddit"
)

// EpisodePosts returns every post carrying an episode code, ordered by
// episode code then creation time.
func EpisodePosts(posts []reddit.Post) []reddit.Post {
	episodes := make([]reddit.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsEpisode() {
			episodes = append(episodes, p)
		}
	}
	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].EpisodeCode != episodes[j].EpisodeCode {
			return episodes[i].EpisodeCode < episodes[j].EpisodeCode
		}
		return episodes[i].CreatedUTC < episodes[j].CreatedUTC
	})
	return episodes
}

// PickTrailer returns the most discussed trailer-flagged post, using score as
// the tiebreaker. The second return is false when no trailer was found.
func PickTrailer(posts []reddit.Post) (reddit.Post, bool) {
	var (
		best  reddit.Post
		found bool
	)
	for _, p := range posts {
		if !p.IsTrailer {
			continue
		}
		if !found || moreDiscussed(p, best) {
			best = p
			found = true
		}
	}
	return best, found
}

// PickOtherPosts returns the top n posts that are neither episode threads nor
// trailers, ranked by comment count with score as the tiebreaker.
func PickOtherPosts(posts []reddit.Post, n int) []reddit.Post {
	if n <= 0 {
		return nil
	}
	candidates := make([]reddit.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsEpisode() || p.IsTrailer {
			continue
		}
		candidates = append(candidates, p)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return moreDiscussed(candidates[i], candidates[j])
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func moreDiscussed(a, b reddit.Post) bool {
	if a.NumComments != b.NumComments {
		return a.NumComments > b.NumComments
	}
	return a.Score > b.Score
}

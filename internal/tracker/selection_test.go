package tracker

import (
	"testing"

	"rewindtrack/internal/reddit"
)

func TestEpisodePostsSortsByCode(t *testing.T) {
	posts := []reddit.Post{
		{ID: "a", Title: "later", EpisodeCode: "1x03", CreatedUTC: 300},
		{ID: "b", Title: "news"},
		{ID: "c", Title: "earlier", EpisodeCode: "1x02", CreatedUTC: 100},
		{ID: "d", Title: "repost", EpisodeCode: "1x02", CreatedUTC: 200},
	}

	episodes := EpisodePosts(posts)
	if len(episodes) != 3 {
		t.Fatalf("expected 3 episode posts, got %d", len(episodes))
	}
	got := []string{episodes[0].ID, episodes[1].ID, episodes[2].ID}
	want := []string{"c", "d", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("episode order = %v, want %v", got, want)
		}
	}
}

func TestPickTrailerPrefersMostDiscussed(t *testing.T) {
	posts := []reddit.Post{
		{ID: "a", IsTrailer: true, NumComments: 10, Score: 100},
		{ID: "b", IsTrailer: true, NumComments: 42, Score: 5},
		{ID: "c", NumComments: 900},
	}

	trailer, ok := PickTrailer(posts)
	if !ok {
		t.Fatal("expected a trailer")
	}
	if trailer.ID != "b" {
		t.Fatalf("picked trailer %s, want b", trailer.ID)
	}

	if _, ok := PickTrailer(posts[2:]); ok {
		t.Fatal("expected no trailer among untagged posts")
	}
}

func TestPickTrailerTiebreaksOnScore(t *testing.T) {
	posts := []reddit.Post{
		{ID: "a", IsTrailer: true, NumComments: 10, Score: 50},
		{ID: "b", IsTrailer: true, NumComments: 10, Score: 80},
	}

	trailer, _ := PickTrailer(posts)
	if trailer.ID != "b" {
		t.Fatalf("picked trailer %s, want b", trailer.ID)
	}
}

func TestPickOtherPostsExcludesClassified(t *testing.T) {
	posts := []reddit.Post{
		{ID: "episode", EpisodeCode: "1x01", NumComments: 500},
		{ID: "trailer", IsTrailer: true, NumComments: 400},
		{ID: "busy", NumComments: 300},
		{ID: "quiet", NumComments: 5},
		{ID: "medium", NumComments: 50},
	}

	others := PickOtherPosts(posts, 2)
	if len(others) != 2 {
		t.Fatalf("expected 2 other posts, got %d", len(others))
	}
	if others[0].ID != "busy" || others[1].ID != "medium" {
		t.Fatalf("other posts = [%s %s], want [busy medium]", others[0].ID, others[1].ID)
	}

	if got := PickOtherPosts(posts, 0); got != nil {
		t.Fatalf("expected nil for zero limit, got %v", got)
	}
}

// Package episode classifies Reddit post titles for the tracked show.
//
// It extracts normalized episode codes from free-text titles (S01E02 and
// 1x02 both become "1x02"; "Episode 3" becomes the episode-only "E03") and
// detects trailer-like posts by combining show mentions with trailer
// keywords. Classification is title-only: no post body or flair is consulted.
package episode

package episode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTrailerKeywords are the title fragments that mark a post as
// trailer-like, checked case-insensitively. Order matters only for
// readability; matching any keyword is enough.
var DefaultTrailerKeywords = []string{
	"official trailer",
	"teaser trailer",
	"trailer",
	"teaser",
}

var (
	// 1x02, 1X02, 10x3
	crossPattern = regexp.MustCompile(`\b(\d{1,2})\s*[xX]\s*(\d{1,2})\b`)
	// S01E01, s1e2
	seasonPattern = regexp.MustCompile(`\b[Ss](\d{1,2})\s*[Ee](\d{1,2})\b`)
	// "Episode 3", "Ep 3", "Ep. 3"
	episodeOnlyPattern = regexp.MustCompile(`(?i)\b(?:episode|ep)\.?\s*(\d{1,2})\b`)
)

// ExtractCode derives a normalized episode code from a post title.
//
// Season/episode patterns yield the "1x02" form (season unpadded, episode
// zero-padded to two digits). Episode-only patterns yield "E03". Returns the
// empty string when no pattern matches.
func ExtractCode(title string) string {
	for _, pattern := range []*regexp.Regexp{crossPattern, seasonPattern} {
		m := pattern.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		season, _ := strconv.Atoi(m[1])
		ep, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%dx%02d", season, ep)
	}
	if m := episodeOnlyPattern.FindStringSubmatch(title); m != nil {
		ep, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("E%02d", ep)
	}
	return ""
}

// TrailerMatcher reports whether a post title looks like a trailer or teaser
// announcement for the tracked show.
type TrailerMatcher struct {
	mentions []string
	keywords []string
}

// NewTrailerMatcher builds a matcher from the show name and the configured
// query terms. Surrounding quotes on query terms are stripped so CSV-ish
// values like `"Star Trek: Starfleet Academy"` match naturally. When
// keywords is empty, DefaultTrailerKeywords is used.
func NewTrailerMatcher(showName string, queryTerms, keywords []string) TrailerMatcher {
	mentions := make([]string, 0, len(queryTerms)+1)
	if name := strings.ToLower(strings.TrimSpace(showName)); name != "" {
		mentions = append(mentions, name)
	}
	for _, term := range queryTerms {
		term = strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(term), `"`)))
		if term != "" {
			mentions = append(mentions, term)
		}
	}
	if len(keywords) == 0 {
		keywords = DefaultTrailerKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return TrailerMatcher{mentions: mentions, keywords: lowered}
}

// Matches reports whether the title both mentions the show (by name or any
// query term) and contains a trailer keyword.
func (m TrailerMatcher) Matches(title string) bool {
	lowered := strings.ToLower(title)
	mentioned := false
	for _, mention := range m.mentions {
		if strings.Contains(lowered, mention) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return false
	}
	for _, kw := range m.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

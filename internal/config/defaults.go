package config

import "rewindtrack/internal/episode"

const (
	defaultShowName       = "Starfleet Academy"
	defaultShowSlug       = "starfleet_academy"
	defaultSubreddit      = "television"
	defaultBaseURL        = "https://www.reddit.com"
	defaultLimit          = 100
	defaultSort           = "new"
	defaultTimeFilter     = "all"
	defaultUserAgent      = "RewindOS-SubTracker/1.0 (personal project; respectful polling)"
	defaultMaxRetries     = 5
	defaultRequestTimeout = 30
	defaultOtherPosts     = 5
	defaultDataDir        = "~/.local/share/rewindtrack/data"
	defaultOutDir         = "~/.local/share/rewindtrack/out"
	defaultLogDir         = "~/.local/share/rewindtrack/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Show: Show{
			Name:       defaultShowName,
			Slug:       defaultShowSlug,
			Subreddits: []string{defaultSubreddit},
		},
		Search: Search{
			BaseURL:        defaultBaseURL,
			Limit:          defaultLimit,
			Sort:           defaultSort,
			TimeFilter:     defaultTimeFilter,
			UserAgent:      defaultUserAgent,
			MaxRetries:     defaultMaxRetries,
			RequestTimeout: defaultRequestTimeout,
		},
		Selection: Selection{
			OtherPosts:      defaultOtherPosts,
			TrailerKeywords: append([]string(nil), episode.DefaultTrailerKeywords...),
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			OutDir:  defaultOutDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

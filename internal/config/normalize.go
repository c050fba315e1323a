package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rewindtrack/internal/textutil"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	c.normalizeShow()
	c.normalizeSearch()
	c.normalizeSelection()
	c.normalizeLogging()
	return c.normalizePaths()
}

// applyEnvOverrides keeps the original operator surface working: the tracker
// was driven entirely by environment variables before it grew a config file,
// and scheduled deployments still set these.
func (c *Config) applyEnvOverrides() {
	if value, ok := os.LookupEnv("SHOW_NAME"); ok && strings.TrimSpace(value) != "" {
		c.Show.Name = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SHOW_SLUG"); ok && strings.TrimSpace(value) != "" {
		c.Show.Slug = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SUBREDDITS"); ok {
		if list := splitCommaList(value); len(list) > 0 {
			c.Show.Subreddits = list
		}
	}
	if value, ok := os.LookupEnv("QUERY_TERMS"); ok {
		if list := splitCommaList(value); len(list) > 0 {
			c.Show.QueryTerms = list
		}
	}
	if value, ok := os.LookupEnv("LIMIT"); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			c.Search.Limit = parsed
		}
	}
	if value, ok := os.LookupEnv("OTHER_N"); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			c.Selection.OtherPosts = parsed
		}
	}
	if value, ok := os.LookupEnv("SORT"); ok && strings.TrimSpace(value) != "" {
		c.Search.Sort = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("T"); ok && strings.TrimSpace(value) != "" {
		c.Search.TimeFilter = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("USER_AGENT"); ok && strings.TrimSpace(value) != "" {
		c.Search.UserAgent = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeShow() {
	c.Show.Name = strings.TrimSpace(c.Show.Name)
	c.Show.Slug = strings.TrimSpace(c.Show.Slug)
	if c.Show.Slug == "" && c.Show.Name != "" {
		c.Show.Slug = textutil.SanitizeToken(c.Show.Name)
	}
	if c.Show.Name == "" && c.Show.Slug != "" {
		c.Show.Name = displayNameFromSlug(c.Show.Slug)
	}
	c.Show.Subreddits = trimList(c.Show.Subreddits)
	c.Show.QueryTerms = trimList(c.Show.QueryTerms)
	if len(c.Show.QueryTerms) == 0 && c.Show.Name != "" {
		c.Show.QueryTerms = []string{c.Show.Name}
	}
}

func (c *Config) normalizeSearch() {
	c.Search.BaseURL = strings.TrimRight(strings.TrimSpace(c.Search.BaseURL), "/")
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = defaultBaseURL
	}
	c.Search.Sort = strings.ToLower(strings.TrimSpace(c.Search.Sort))
	c.Search.TimeFilter = strings.ToLower(strings.TrimSpace(c.Search.TimeFilter))
	c.Search.UserAgent = strings.TrimSpace(c.Search.UserAgent)
	if c.Search.UserAgent == "" {
		c.Search.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeSelection() {
	c.Selection.TrailerKeywords = trimList(c.Selection.TrailerKeywords)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutDir, err = expandPath(c.Paths.OutDir); err != nil {
		return fmt.Errorf("paths.out_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// displayNameFromSlug turns an identifier like "severance" or
// "the_rehearsal" into a presentable show name.
func displayNameFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-'
	})
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

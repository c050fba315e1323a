package config

import (
	"errors"
	"fmt"
)

var validSorts = map[string]struct{}{
	"new":       {},
	"top":       {},
	"relevance": {},
}

var validTimeFilters = map[string]struct{}{
	"all":   {},
	"year":  {},
	"month": {},
	"week":  {},
	"day":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateShow(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateSelection()
}

func (c *Config) validateShow() error {
	if c.Show.Name == "" {
		return errors.New("show.name must be set (or export SHOW_NAME)")
	}
	if c.Show.Slug == "" {
		return errors.New("show.slug must be set (or export SHOW_SLUG)")
	}
	if len(c.Show.Subreddits) == 0 {
		return errors.New("show.subreddits must list at least one subreddit (or export SUBREDDITS)")
	}
	if len(c.Show.QueryTerms) == 0 {
		return errors.New("show.query_terms must list at least one term (or export QUERY_TERMS)")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.Limit < 1 || c.Search.Limit > 100 {
		return fmt.Errorf("search.limit must be between 1 and 100, got %d", c.Search.Limit)
	}
	if _, ok := validSorts[c.Search.Sort]; !ok {
		return fmt.Errorf("search.sort must be one of new, top, relevance; got %q", c.Search.Sort)
	}
	if _, ok := validTimeFilters[c.Search.TimeFilter]; !ok {
		return fmt.Errorf("search.time_filter must be one of all, year, month, week, day; got %q", c.Search.TimeFilter)
	}
	if c.Search.MaxRetries <= 0 {
		return errors.New("search.max_retries must be positive")
	}
	if c.Search.RequestTimeout <= 0 {
		return errors.New("search.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSelection() error {
	if c.Selection.OtherPosts < 0 {
		return errors.New("selection.other_posts must not be negative")
	}
	return nil
}

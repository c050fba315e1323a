package main

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"rewindtrack/internal/config"
	"rewindtrack/internal/history"
	"rewindtrack/internal/logging"
	"rewindtrack/internal/reddit"
	"rewindtrack/internal/tracker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the history store for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.HistoryDB())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// withTracker wires up the full run dependency set: config, logger, Reddit
// client, and history store.
func (c *commandContext) withTracker(fn func(*config.Config, *tracker.Tracker) error) error {
	return c.withStore(func(cfg *config.Config, store *history.Store) error {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		client, err := reddit.New(
			cfg.Search.BaseURL,
			cfg.Search.UserAgent,
			time.Duration(cfg.Search.RequestTimeout)*time.Second,
			cfg.Search.MaxRetries,
			reddit.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		return fn(cfg, tracker.New(cfg, client, store, logger))
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Show identifies the tracked television show and where to look for it.
type Show struct {
	Name       string   `toml:"name"`
	Slug       string   `toml:"slug"`
	Subreddits []string `toml:"subreddits"`
	QueryTerms []string `toml:"query_terms"`
}

// Search contains parameters for the Reddit public JSON search endpoint.
type Search struct {
	BaseURL        string `toml:"base_url"`
	Limit          int    `toml:"limit"`
	Sort           string `toml:"sort"`
	TimeFilter     string `toml:"time_filter"`
	UserAgent      string `toml:"user_agent"`
	MaxRetries     int    `toml:"max_retries"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Selection controls how the curated subset of posts is picked.
type Selection struct {
	OtherPosts      int      `toml:"other_posts"`
	TrailerKeywords []string `toml:"trailer_keywords"`
}

// Paths contains output and state directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	OutDir  string `toml:"out_dir"`
	LogDir  string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for rewindtrack.
//
// Configuration sections by subsystem:
//   - Show: show identity, subreddits, and query terms
//   - Search: Reddit search endpoint parameters and retry budget
//   - Selection: trailer keywords and other-post count
//   - Paths: data, output, and log directories
//   - Logging: log format and level
type Config struct {
	Show      Show      `toml:"show"`
	Search    Search    `toml:"search"`
	Selection Selection `toml:"selection"`
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rewindtrack/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has environment overrides applied and all path fields expanded and
// normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rewindtrack.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data, output, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.OutDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AllPostsCSV returns the path of the full post export for this run.
func (c *Config) AllPostsCSV() string {
	return filepath.Join(c.Paths.OutDir, c.Show.Slug+"_all_posts.csv")
}

// EpisodePostsCSV returns the path of the episode-thread export.
func (c *Config) EpisodePostsCSV() string {
	return filepath.Join(c.Paths.OutDir, c.Show.Slug+"_episode_posts.csv")
}

// SelectedPostsCSV returns the path of the curated subset export.
func (c *Config) SelectedPostsCSV() string {
	return filepath.Join(c.Paths.OutDir, c.Show.Slug+"_selected_posts.csv")
}

// HistoryCSV returns the path of the comment-history export.
func (c *Config) HistoryCSV() string {
	return filepath.Join(c.Paths.DataDir, c.Show.Slug+"_comment_history.csv")
}

// HistoryDB returns the path of the snapshot database.
func (c *Config) HistoryDB() string {
	return filepath.Join(c.Paths.DataDir, c.Show.Slug+"_history.db")
}

// EpisodeChartPNG returns the path of the episode comment-growth chart.
func (c *Config) EpisodeChartPNG() string {
	return filepath.Join(c.Paths.OutDir, c.Show.Slug+"_episode_comment_growth.png")
}

// NonEpisodeChartPNG returns the path of the non-episode comment-growth chart.
func (c *Config) NonEpisodeChartPNG() string {
	return filepath.Join(c.Paths.OutDir, c.Show.Slug+"_non_episode_comment_growth.png")
}

// DashboardHTML returns the path of the rendered dashboard.
func (c *Config) DashboardHTML() string {
	return filepath.Join(c.Paths.OutDir, "dashboard_"+c.Show.Slug+".html")
}

// LogFile returns the path of the per-show tracker log.
func (c *Config) LogFile() string {
	return filepath.Join(c.Paths.LogDir, c.Show.Slug+"_tracker.log")
}

// LockFile returns the path of the run lock guarding overlapping invocations.
func (c *Config) LockFile() string {
	return filepath.Join(c.Paths.DataDir, c.Show.Slug+".lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

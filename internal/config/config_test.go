package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Show.Slug != "starfleet_academy" {
		t.Fatalf("unexpected default slug: %q", cfg.Show.Slug)
	}
	if len(cfg.Show.QueryTerms) == 0 {
		t.Fatal("expected query terms derived from show name")
	}
	if cfg.Search.Limit != 100 || cfg.Search.Sort != "new" {
		t.Fatalf("unexpected search defaults: %+v", cfg.Search)
	}
}

func TestLoadParsesFileAndDerivesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[show]
name = "Some Show"
subreddits = ["television"]
query_terms = ["Some Show"]

[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
out_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Show.Slug != "some_show" {
		t.Fatalf("expected slug derived from name, got %q", cfg.Show.Slug)
	}
	if got := cfg.DashboardHTML(); got != filepath.Join(dir, "out", "dashboard_some_show.html") {
		t.Fatalf("unexpected dashboard path: %q", got)
	}
	if got := cfg.HistoryDB(); !strings.HasSuffix(got, "some_show_history.db") {
		t.Fatalf("unexpected history db path: %q", got)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("SHOW_NAME", "Env Show")
	t.Setenv("SHOW_SLUG", "env_show")
	t.Setenv("SUBREDDITS", "television, startrek")
	t.Setenv("QUERY_TERMS", `"Env Show",ES`)
	t.Setenv("LIMIT", "25")
	t.Setenv("OTHER_N", "3")
	t.Setenv("SORT", "top")
	t.Setenv("T", "week")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Show.Name != "Env Show" || cfg.Show.Slug != "env_show" {
		t.Fatalf("unexpected show identity: %+v", cfg.Show)
	}
	if len(cfg.Show.Subreddits) != 2 || cfg.Show.Subreddits[1] != "startrek" {
		t.Fatalf("unexpected subreddits: %v", cfg.Show.Subreddits)
	}
	if len(cfg.Show.QueryTerms) != 2 || cfg.Show.QueryTerms[0] != `"Env Show"` {
		t.Fatalf("unexpected query terms: %v", cfg.Show.QueryTerms)
	}
	if cfg.Search.Limit != 25 || cfg.Search.Sort != "top" || cfg.Search.TimeFilter != "week" {
		t.Fatalf("unexpected search settings: %+v", cfg.Search)
	}
	if cfg.Selection.OtherPosts != 3 {
		t.Fatalf("unexpected other_posts: %d", cfg.Selection.OtherPosts)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty subreddits", func(c *Config) { c.Show.Subreddits = nil }, "show.subreddits"},
		{"limit too high", func(c *Config) { c.Search.Limit = 500 }, "search.limit"},
		{"bad sort", func(c *Config) { c.Search.Sort = "hot" }, "search.sort"},
		{"bad time filter", func(c *Config) { c.Search.TimeFilter = "decade" }, "search.time_filter"},
		{"negative other posts", func(c *Config) { c.Selection.OtherPosts = -1 }, "selection.other_posts"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Show.QueryTerms = []string{cfg.Show.Name}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDisplayNameFromSlug(t *testing.T) {
	cases := map[string]string{
		"severance":     "Severance",
		"the_rehearsal": "The Rehearsal",
		"twin-peaks":    "Twin Peaks",
	}
	for slug, want := range cases {
		if got := displayNameFromSlug(slug); got != want {
			t.Fatalf("displayNameFromSlug(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[show]") {
		t.Fatal("sample config missing [show] section")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCommandProducesOutputs(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Rewind tracking run")
	requireContains(t, out, "Posts found")
	requireContains(t, out, "1x02")

	outDir := filepath.Join(env.baseDir, "out")
	for _, name := range []string{
		"rewind_all_posts.csv",
		"rewind_episode_posts.csv",
		"rewind_selected_posts.csv",
		"dashboard_rewind.html",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
}

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "1x02")
	requireContains(t, out, "Episode")

	out, _, err = runCLI(t, []string{"history", "recent", "--limit", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("history recent: %v", err)
	}
	requireContains(t, out, "Taken")

	out, _, err = runCLI(t, []string{"history", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	requireContains(t, out, "Snapshots")

	target := filepath.Join(env.baseDir, "export.csv")
	out, _, err = runCLI(t, []string{"history", "export", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("history export: %v", err)
	}
	requireContains(t, out, "Wrote history")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected export at %s: %v", target, err)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No snapshots recorded yet")
}

func TestReportCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	dashboard := filepath.Join(env.baseDir, "out", "dashboard_rewind.html")
	if err := os.Remove(dashboard); err != nil {
		t.Fatalf("remove dashboard: %v", err)
	}

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "Dashboard rebuilt")
	if _, err := os.Stat(dashboard); err != nil {
		t.Fatalf("expected rebuilt dashboard: %v", err)
	}
}

func TestReportCommandWithoutHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"report"}, env.configPath); err == nil {
		t.Fatal("expected report to fail without snapshots")
	}
}

func TestConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected config init to refuse overwriting")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Rewind")
	requireContains(t, out, "television")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "rewindtrack")
}

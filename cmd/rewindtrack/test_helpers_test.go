package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
	server     *httptest.Server
}

const searchPayload = `{
	"data": {
		"children": [
			{"data": {
				"id": "ep1", "name": "t3_ep1", "subreddit": "television",
				"created_utc": 1767261600,
				"title": "Rewind 1x02 Episode Discussion",
				"permalink": "/r/television/comments/ep1/",
				"url": "https://www.reddit.com/r/television/comments/ep1/",
				"author": "mod", "score": 250, "num_comments": 140
			}},
			{"data": {
				"id": "ot1", "name": "t3_ot1", "subreddit": "television",
				"created_utc": 1767268800,
				"title": "Casting news for the second season",
				"permalink": "/r/television/comments/ot1/",
				"url": "https://example.com/article",
				"author": "fan", "score": 40, "num_comments": 12
			}}
		]
	}
}`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchPayload)
	}))
	t.Cleanup(server.Close)

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, server.URL)

	return &cliTestEnv{
		configPath: configPath,
		baseDir:    base,
		server:     server,
	}
}

func writeTestConfig(t *testing.T, path, base, baseURL string) {
	t.Helper()
	content := fmt.Sprintf(`[show]
name = "Rewind"
subreddits = ["television"]
query_terms = ["Rewind"]

[search]
base_url = %q
limit = 25
max_retries = 1
request_timeout = 5

[paths]
data_dir = %q
out_dir = %q
log_dir = %q

[logging]
level = "error"
`,
		baseURL,
		filepath.Join(base, "data"),
		filepath.Join(base, "out"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

package testsupport

import (
	"testing"

	"rewindtrack/internal/config"
	"rewindtrack/internal/history"
)

// MustOpenStore opens the history store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.HistoryDB())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

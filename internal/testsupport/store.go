package testsupport

import (
	"testing"

	"shotline/internal/config"
	"shotline/internal/store"
)

// MustOpenStore opens a run history store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	history, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		history.Close()
	})
	return history
}

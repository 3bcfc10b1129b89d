package testutil

import (
	"testing"

	"github.com/cimillas/event-tickets/internal/storage/sqlite"
)

// NewTestStore opens a private in-memory SQLite store closed at cleanup.
func NewTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

package persistence

import "testing"

// NewTestSlots creates a fresh in-memory SQLite slot store closed on cleanup.
func NewTestSlots(t testing.TB) *SQLiteSlots {
	t.Helper()

	store, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening test slot store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

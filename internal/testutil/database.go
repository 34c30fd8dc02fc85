// Package testutil provides shared helpers for tests that need a state store.
package testutil

import (
	"context"
	"testing"

	"github.com/anoushkasinn/Spend.Sense/internal/storage"
)

// SetupTestStore creates a migrated in-memory store that is closed when the
// test ends.
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedValue writes value under key or fails the test.
func SeedValue(t *testing.T, store *storage.SQLiteStorage, key string, value []byte) {
	t.Helper()
	if err := store.Put(context.Background(), key, value); err != nil {
		t.Fatalf("failed to seed %q: %v", key, err)
	}
}

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRepositoryGetSet(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "expenses.db")

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	if _, ok, err := repo.Get(ctx, "expenses"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "expenses", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "expenses", `[{"id":1}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := repo.Get(ctx, "expenses")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "expenses.db")

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := repo.Set(ctx, "darkMode", "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations must be a no-op the second time.
	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	if v, ok, _ := repo.Get(ctx, "darkMode"); !ok || v != "true" {
		t.Fatalf("expected persisted value, got %q ok=%v", v, ok)
	}
}

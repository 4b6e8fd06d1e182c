package storage

import (
	"context"
	"os"
	"testing"
)

func TestPostgresRepositoryGetSet(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	repo, err := NewPostgresRepository(ctx, dsn)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	key := "test-" + t.Name()
	if err := repo.Set(ctx, key, "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, key, "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := repo.Get(ctx, key)
	if err != nil || !ok || v != "two" {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, err := repo.Get(ctx, key+"-missing"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}

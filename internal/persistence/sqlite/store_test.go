package sqlite_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"workshop-manager/internal/persistence"
	"workshop-manager/internal/persistence/sqlite"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workshop.db")

	store, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	payload := []byte(`[{"id":"m-1","name":"Teak Wood"}]`)
	if err := store.Save(ctx, persistence.BucketMaterials, payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Overwrites replace the bucket rather than appending.
	updated := []byte(`[{"id":"m-1","name":"Teak Wood"},{"id":"m-2","name":"Plywood"}]`)
	if err := store.Save(ctx, persistence.BucketMaterials, updated); err != nil {
		t.Fatalf("Save (overwrite) failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A fresh store over the same file sees the last write.
	reopened, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New (reopen) failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	buckets, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := buckets[persistence.BucketMaterials]; !bytes.Equal(got, updated) {
		t.Errorf("loaded payload = %s, want %s", got, updated)
	}
	if _, ok := buckets[persistence.BucketWorkers]; ok {
		t.Error("unexpected payload for a bucket that was never written")
	}
}

func TestStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "workshop.db")

	store, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Path() != path {
		t.Errorf("Path() = %s, want %s", store.Path(), path)
	}
	if err := store.Save(context.Background(), persistence.BucketSales, []byte(`[]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

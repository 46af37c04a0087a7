package persistence_test

import (
	"bytes"
	"context"
	"testing"

	"workshop-manager/internal/persistence"
)

func TestMemory_CopiesPayloads(t *testing.T) {
	ctx := context.Background()
	m := persistence.NewMemory()

	payload := []byte(`[{"id":"w-1"}]`)
	if err := m.Save(ctx, persistence.BucketWorkers, payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Mutating the caller's slice after Save must not leak into the store.
	payload[2] = 'X'

	loaded, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(loaded[persistence.BucketWorkers], []byte(`[{"id":"w-1"}]`)) {
		t.Errorf("stored payload was mutated through the caller's slice: %s", loaded[persistence.BucketWorkers])
	}

	// And mutating a loaded payload must not corrupt the store either.
	loaded[persistence.BucketWorkers][0] = 'X'
	again, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load (second) failed: %v", err)
	}
	if !bytes.Equal(again[persistence.BucketWorkers], []byte(`[{"id":"w-1"}]`)) {
		t.Errorf("stored payload was mutated through a loaded copy: %s", again[persistence.BucketWorkers])
	}
}

func TestMemory_EmptyLoad(t *testing.T) {
	m := persistence.NewMemory()
	loaded, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty map, got %d buckets", len(loaded))
	}
}

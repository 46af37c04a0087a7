// Package persistence defines the durable snapshot contract for the entity
// store: one opaque payload per collection bucket, loaded once at startup and
// rewritten whenever the collection mutates. Writes are last-write-wins; there
// is no versioning and no cross-bucket transaction.
package persistence

import (
	"context"
	"sync"
)

// Bucket names, one per entity collection.
const (
	BucketMaterials   = "materials"
	BucketWorkers     = "workers"
	BucketFurniture   = "furniture"
	BucketProductions = "productions"
	BucketSales       = "sales"
	BucketUdhar       = "udhar"
)

// Buckets lists every collection bucket in a stable order.
var Buckets = []string{
	BucketMaterials,
	BucketWorkers,
	BucketFurniture,
	BucketProductions,
	BucketSales,
	BucketUdhar,
}

// Adapter is the durable key-value snapshot store. Load returns whatever
// buckets exist; a missing bucket simply has no entry. Implementations must
// tolerate unknown bucket names on Save.
type Adapter interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, bucket string, payload []byte) error
	Close() error
}

// Memory is an Adapter that keeps buckets in process memory. It backs tests
// and ephemeral runs.
type Memory struct {
	mu      sync.Mutex
	buckets map[string][]byte
}

// NewMemory returns an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.buckets))
	for k, v := range m.buckets {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}

func (m *Memory) Save(ctx context.Context, bucket string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.buckets[bucket] = cp
	return nil
}

func (m *Memory) Close() error { return nil }

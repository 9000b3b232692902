package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/revradar/revradar/internal/models"
)

// MemStore is an in-memory Store for tests and single-shot runs. Values
// are kept serialized so reads return independent copies, matching the
// behavior of the persistent backends.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MemStore) Read(_ context.Context, key string) (*models.ModelAnalysis, error) {
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("[MemStore] no artifact for %q", key)
	}

	var analysis models.ModelAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("[MemStore] corrupted artifact for %q: %w", key, err)
	}
	return &analysis, nil
}

func (m *MemStore) Write(_ context.Context, key string, analysis *models.ModelAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("[MemStore] marshal failed: %w", err)
	}

	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

package qr

import (
	"context"
	"sync"

	"cleanpos/pkg/sentinel"
)

type asset struct {
	contentType string
	data        []byte
}

// InMemoryAssetStore keeps generated payloads in memory.
type InMemoryAssetStore struct {
	mu     sync.RWMutex
	assets map[string]asset
}

func NewInMemoryAssetStore() *InMemoryAssetStore {
	return &InMemoryAssetStore{assets: make(map[string]asset)}
}

func (s *InMemoryAssetStore) Put(_ context.Context, key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[key] = asset{contentType: contentType, data: append([]byte(nil), data...)}
	return nil
}

func (s *InMemoryAssetStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.assets[key]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte(nil), a.data...), nil
}

package memory

import (
	"context"
	"sync"

	"retailpulse/backend/internal/domain"
	"retailpulse/backend/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	records map[domain.StoreID]*domain.StoreData
}

func New() *Store {
	return &Store{records: make(map[domain.StoreID]*domain.StoreData, len(domain.AllStores()))}
}

func (s *Store) GetStoreData(_ context.Context, storeID domain.StoreID) (*domain.StoreData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[storeID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// PutStoreData publishes data as the store's current record. The record is
// fully built before the swap, so readers see either the old or the new one.
func (s *Store) PutStoreData(_ context.Context, data domain.StoreData) (*domain.StoreData, error) {
	if data.StoreID == "" {
		return nil, store.ErrUnknownStore
	}
	published := &data

	s.mu.Lock()
	s.records[data.StoreID] = published
	s.mu.Unlock()

	return published, nil
}

// ListStoreData returns records in dashboard store order.
func (s *Store) ListStoreData(_ context.Context) ([]*domain.StoreData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StoreData, 0, len(s.records))
	for _, id := range domain.AllStores() {
		if data, ok := s.records[id]; ok {
			result = append(result, data)
		}
	}
	return result, nil
}

package cache

import (
	"context"
	"time"

	"retailpulse/backend/internal/domain"
)

// SnapshotCache shares generated StoreData between replicas so every
// instance serves the same record for a store.
type SnapshotCache interface {
	Get(ctx context.Context, storeID domain.StoreID) (*domain.StoreData, bool, error)
	Set(ctx context.Context, value *domain.StoreData, ttl time.Duration) error
}

type NoopSnapshotCache struct{}

func (NoopSnapshotCache) Get(_ context.Context, _ domain.StoreID) (*domain.StoreData, bool, error) {
	return nil, false, nil
}

func (NoopSnapshotCache) Set(_ context.Context, _ *domain.StoreData, _ time.Duration) error {
	return nil
}

func SnapshotKey(storeID domain.StoreID) string {
	return "retailpulse:storedata:" + string(storeID)
}

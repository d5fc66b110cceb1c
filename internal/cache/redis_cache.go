package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"retailpulse/backend/internal/domain"
)

type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(addr string, password string, db int) *RedisSnapshotCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisSnapshotCache{client: client}
}

func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

func (c *RedisSnapshotCache) Get(ctx context.Context, storeID domain.StoreID) (*domain.StoreData, bool, error) {
	val, err := c.client.Get(ctx, SnapshotKey(storeID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var data domain.StoreData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, false, err
	}
	if data.StoreID != storeID {
		return nil, false, nil
	}
	return &data, true, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, value *domain.StoreData, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, SnapshotKey(value.StoreID), payload, ttl).Err()
}

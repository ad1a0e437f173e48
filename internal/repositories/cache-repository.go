package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SyncResultCacheInterface — кэш последнего результата синхронизации
// для виджета статуса, чтобы дашборд не ходил в БД на каждый поллинг.
type SyncResultCacheInterface interface {
	StoreResult(ctx context.Context, branchID uuid.UUID, result interface{}, ttl time.Duration) error
	// GetResult кладёт закэшированный результат в dest; (false, nil) — промах.
	GetResult(ctx context.Context, branchID uuid.UUID, dest interface{}) (bool, error)
}

type RedisSyncResultCache struct {
	client *redis.Client
}

func NewRedisSyncResultCache(client *redis.Client) SyncResultCacheInterface {
	return &RedisSyncResultCache{client: client}
}

func syncResultKey(branchID uuid.UUID) string {
	return fmt.Sprintf("sync:last_result:%s", branchID)
}

func (c *RedisSyncResultCache) StoreResult(ctx context.Context, branchID uuid.UUID, result interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("сериализация результата синхронизации: %w", err)
	}
	return c.client.Set(ctx, syncResultKey(branchID), payload, ttl).Err()
}

func (c *RedisSyncResultCache) GetResult(ctx context.Context, branchID uuid.UUID, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, syncResultKey(branchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("десериализация результата синхронизации: %w", err)
	}
	return true, nil
}

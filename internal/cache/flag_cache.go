package cache

import (
	"context"
	"time"

	"go-gin-ticket-store/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	flagCacheKey      = "feature_flags:cache"
	flagCacheFreshKey = "feature_flags:cache:fresh"
)

// FeatureFlagCache 功能旗標快取。旗標以 Redis hash 暫存，
// TTL 到期後下一次讀取會觸發 Refresh 重新載入資料庫的值。
type FeatureFlagCache interface {
	// 檢查旗標是否開啟，未知的旗標視為關閉
	IsEnabled(ctx context.Context, key string) (bool, error)
	// 取得所有旗標的快取值
	GetAll(ctx context.Context) (map[string]bool, error)
	// 重新從資料庫載入所有旗標
	Refresh(ctx context.Context) error
}

type RedisFeatureFlagCacheImpl struct {
	client *redis.Client
	repo   repository.FeatureFlagRepository
	ttl    time.Duration
}

func NewRedisFeatureFlagCache(client *redis.Client, repo repository.FeatureFlagRepository, ttl time.Duration) FeatureFlagCache {
	return &RedisFeatureFlagCacheImpl{
		client: client,
		repo:   repo,
		ttl:    ttl,
	}
}

func (c *RedisFeatureFlagCacheImpl) IsEnabled(ctx context.Context, key string) (bool, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return false, err
	}

	val, err := c.client.HGet(ctx, flagCacheKey, key).Result()
	if err == redis.Nil {
		// 快取有效但旗標不存在
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return val == "1", nil
}

func (c *RedisFeatureFlagCacheImpl) GetAll(ctx context.Context) (map[string]bool, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return nil, err
	}

	result, err := c.client.HGetAll(ctx, flagCacheKey).Result()
	if err != nil {
		return nil, err
	}

	flags := make(map[string]bool, len(result))
	for key, val := range result {
		flags[key] = val == "1"
	}

	return flags, nil
}

func (c *RedisFeatureFlagCacheImpl) Refresh(ctx context.Context) error {
	flags, err := c.repo.List(ctx)
	if err != nil {
		return err
	}

	values := make(map[string]interface{}, len(flags))
	for _, flag := range flags {
		if flag.FlagValue {
			values[flag.FlagKey] = "1"
		} else {
			values[flag.FlagKey] = "0"
		}
	}

	// DEL + HSET + 標記一次送出，避免讀到半新半舊的旗標
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, flagCacheKey)
	if len(values) > 0 {
		pipe.HSet(ctx, flagCacheKey, values)
	}
	pipe.Set(ctx, flagCacheFreshKey, "1", c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// ensureFresh TTL 到期後標記會消失，此時重新載入
func (c *RedisFeatureFlagCacheImpl) ensureFresh(ctx context.Context) error {
	exists, err := c.client.Exists(ctx, flagCacheFreshKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return c.Refresh(ctx)
	}
	return nil
}

package helper

import (
	"context"
	"encoding/json"
	"time"

	"travel_manager/constants"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TravelCache lưu response GET của trang public
type TravelCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTravelCache(rdb *redis.Client, ttl time.Duration) *TravelCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TravelCache{rdb: rdb, ttl: ttl}
}

func (c *TravelCache) key(k string) string {
	return constants.TRAVEL_CACHE_PREFIX + k
}

// Get trả về false khi không có cache hoặc redis lỗi
func (c *TravelCache) Get(ctx context.Context, k string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("travel cache get failed", zap.String("key", k), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *TravelCache) Set(ctx context.Context, k string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(k), raw, c.ttl).Err(); err != nil {
		zap.L().Warn("travel cache set failed", zap.String("key", k), zap.Error(err))
	}
}

// Invalidate xoá toàn bộ key travel:*
func (c *TravelCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, constants.TRAVEL_CACHE_PREFIX+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("travel cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			zap.L().Warn("travel cache invalidate failed", zap.Error(err))
		}
	}
}

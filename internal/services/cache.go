package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// UnlockCacheTTL keeps unlock sets warm between timer completions
	UnlockCacheTTL = 6 * time.Hour
	// CatalogCacheTTL covers the static catalog response
	CatalogCacheTTL = 12 * time.Hour
)

// CacheGet retrieves a cached JSON value. A miss is not an error.
func CacheGet(key string, dest interface{}) (bool, error) {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// CacheSet stores a JSON value with the given TTL.
func CacheSet(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx := context.Background()
	return database.RedisClient.Set(ctx, CacheKeyPrefix+key, data, ttl).Err()
}

// CacheDelete drops a cached value.
func CacheDelete(key string) {
	ctx := context.Background()
	database.RedisClient.Del(ctx, CacheKeyPrefix+key)
}

func unlockCacheKey(userID string) string {
	return "unlocks:" + userID
}

// InvalidateUnlockCache drops a user's cached unlock set after any
// write to user_unlocked_sounds.
func InvalidateUnlockCache(userID string) {
	CacheDelete(unlockCacheKey(userID))
}

// CachedUnlocks reads a user's unlock set from cache.
func CachedUnlocks(userID string, dest interface{}) (bool, error) {
	return CacheGet(unlockCacheKey(userID), dest)
}

// StoreUnlocks caches a user's unlock set.
func StoreUnlocks(userID string, value interface{}) error {
	return CacheSet(unlockCacheKey(userID), value, UnlockCacheTTL)
}

// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mechradii/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix prefixes keys holding the active token hash per user.
const AuthCachePrefix = "auth:token:"

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// StoreTokenHash caches the SHA-256 hash of the user's active token so it can
// be checked and revoked by the auth middleware.
func StoreTokenHash(ctx context.Context, userID, token string, ttl time.Duration) error {
	return GetAuthCacheClient().Set(ctx, AuthCachePrefix+userID, HashToken(token), ttl).Err()
}

// GetTokenHash returns the cached token hash for the user, or empty string if
// none is cached (signed out or expired).
func GetTokenHash(ctx context.Context, userID string) (string, error) {
	val, err := GetAuthCacheClient().Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// RevokeTokenHash drops the cached token hash, signing the user out everywhere.
func RevokeTokenHash(ctx context.Context, userID string) error {
	return GetAuthCacheClient().Del(ctx, AuthCachePrefix+userID).Err()
}

// Package hostcache is the key-value cache the sidebar keeps outside its own
// lifetime: the serialized state blob between page shows, and the marketplace
// access token with its expiry. Backed by the shared redis client.
package hostcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"leedz/shared"
)

const (
	keyState       = "state"
	keyToken       = "token"
	keyTokenExpiry = "token:expiry"

	namespace = "leedz"
)

//go:generate go run go.uber.org/mock/mockgen -source=hostcache.go -destination=mocks/hostcache.go -package=hostcache_mocks

// Cache stores the sidebar's cross-page-show artifacts.
type Cache interface {
	SaveState(ctx context.Context, blob map[string]any) error
	LoadState(ctx context.Context) (map[string]any, error)
	ClearState(ctx context.Context) error
	SaveToken(ctx context.Context, token string, expires time.Time) error
	LoadToken(ctx context.Context) (string, time.Time, error)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps a redis client. A zero ttl keeps entries until cleared.
func New(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) SaveState(ctx context.Context, blob map[string]any) error {
	payload, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshaling state blob: %w", err)
	}

	key := shared.BuildCacheKey(namespace, keyState)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save state blob")

		return fmt.Errorf("saving state blob: %w", err)
	}

	return nil
}

func (c *redisCache) LoadState(ctx context.Context) (map[string]any, error) {
	key := shared.BuildCacheKey(namespace, keyState)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to load state blob")

		return nil, fmt.Errorf("loading state blob: %w", err)
	}

	var blob map[string]any
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, fmt.Errorf("decoding state blob: %w", err)
	}

	return blob, nil
}

func (c *redisCache) ClearState(ctx context.Context) error {
	key := shared.BuildCacheKey(namespace, keyState)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clearing state blob: %w", err)
	}

	return nil
}

func (c *redisCache) SaveToken(ctx context.Context, token string, expires time.Time) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, shared.BuildCacheKey(namespace, keyToken), token, c.ttl)
	pipe.Set(ctx, shared.BuildCacheKey(namespace, keyTokenExpiry), expires.Format(time.RFC3339), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving token pair: %w", err)
	}

	return nil
}

// LoadToken returns an empty token when none is cached or the cached one has
// expired, so the caller always refetches a usable token.
func (c *redisCache) LoadToken(ctx context.Context) (string, time.Time, error) {
	token, err := c.client.Get(ctx, shared.BuildCacheKey(namespace, keyToken)).Result()
	if err == redis.Nil {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("loading token: %w", err)
	}

	rawExpiry, err := c.client.Get(ctx, shared.BuildCacheKey(namespace, keyTokenExpiry)).Result()
	if err == redis.Nil {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("loading token expiry: %w", err)
	}

	expires, err := time.Parse(time.RFC3339, rawExpiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parsing token expiry: %w", err)
	}

	if !expires.After(time.Now()) {
		return "", time.Time{}, nil
	}

	return token, expires, nil
}

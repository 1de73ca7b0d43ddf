package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
)

// Nil is returned (wrapped) by Get on a cache miss.
const Nil = redis.Nil

// RedisCache stores JSON snapshots of read models. Durations are in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
	Increment(ctx context.Context, key string, windowSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Save stores strings as-is and everything else as JSON.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, payload, seconds(duration)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

// Get decodes the value at key into value, which must be a pointer.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Clear deletes every key matching the glob pattern, scanning in batches.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	iter := cache.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := cache.client.Del(ctx, batch...).Err(); err != nil {
			log.Error().Err(err).Str("pattern", pattern).Int("keys", len(batch)).Msg("failed to clear cache")

			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		batch = batch[:0]

		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == scanBatch {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	scope.SetAttribute("cache.cleared", len(batch))

	return flush()
}

// Increment bumps a fixed-window counter. The window starts at the first increment.
func (cache *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := cache.scope(ctx, "Increment", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if count, err = cache.client.Incr(ctx, key).Result(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment cache")

		return 0, fmt.Errorf("failed to increment cache value: %w", err)
	}

	if count > 1 {
		return count, nil
	}

	if err = cache.client.Expire(ctx, key, seconds(windowSeconds)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache expiry")

		return count, fmt.Errorf("failed to set cache expiry: %w", err)
	}

	return count, nil
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

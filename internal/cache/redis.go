package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) || err != nil {
		return nil, false
	}
	return val, true
}

// Version returns the invalidation generation of key. A fill computed after reading
// version is only stored while the generation is unchanged.
func (r *RedisCache) Version(ctx context.Context, key string) (int64, error) {
	v, err := r.rdb.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

var setIfVersion = redis.NewScript(`
local v = redis.call('GET', KEYS[2])
if not v then v = '0' end
if v ~= ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// SetIfVersion stores data under key unless key was invalidated after version was read.
func (r *RedisCache) SetIfVersion(ctx context.Context, key string, data []byte, ttl time.Duration, version int64) {
	setIfVersion.Run(ctx, r.rdb, []string{key, versionKey(key)}, data, version, ttl.Milliseconds())
}

// Invalidate drops keys and bumps their generations, so fills already in flight are discarded.
func (r *RedisCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_, _ = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))
			pipe.Expire(ctx, versionKey(key), versionTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
}

// versionTTL outlives any fill; an expired generation reads as 0 and only rejects fills.
const versionTTL = 24 * time.Hour

func versionKey(key string) string {
	return key + ":v"
}

// PendingCountKey is the cache key of an advisor's awaiting-review counter.
func PendingCountKey(advisorID uuid.UUID) string {
	return "bimbingan:pending:" + advisorID.String()
}

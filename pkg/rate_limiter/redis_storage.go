package rate_limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mytunes-api/pkg/env"
)

// consumeLuaScript runs the whole consume step server-side so concurrent
// requests from any number of backend processes serialize on Redis.
//
// KEYS[1] counter key, KEYS[2] block key.
// ARGV[1] points, ARGV[2] window seconds, ARGV[3] block seconds, ARGV[4] cost.
// Reply: {allowed, remaining_points, retry_after_seconds}.
const consumeLuaScript = `
local blockTtl = redis.call("TTL", KEYS[2])
if blockTtl > 0 then
	return {0, 0, blockTtl}
end
local count = redis.call("INCRBY", KEYS[1], ARGV[4])
if count == tonumber(ARGV[4]) then
	redis.call("EXPIRE", KEYS[1], ARGV[2])
end
if count > tonumber(ARGV[1]) then
	redis.call("SET", KEYS[2], 1, "EX", ARGV[3])
	redis.call("DEL", KEYS[1])
	return {0, 0, tonumber(ARGV[3])}
end
local ttl = redis.call("TTL", KEYS[1])
if ttl < 0 then
	ttl = tonumber(ARGV[2])
end
return {1, tonumber(ARGV[1]) - count, ttl}
`

type RedisStorage struct {
	dB      *redis.Client
	consume *redis.Script
}

var _ Storer = (*RedisStorage)(nil)

func NewRedis() Storer {
	envObj := env.GetEnv()
	return NewRedisWithClient(redis.NewClient(&redis.Options{
		Addr:     envObj.RedisAddr,
		Password: envObj.RedisPassword,
		DB:       envObj.RedisDb,
		PoolSize: envObj.RedisPoolSize,
	}))
}

func NewRedisWithClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		dB:      client,
		consume: redis.NewScript(consumeLuaScript),
	}
}

func (r *RedisStorage) Consume(ctx context.Context, key string, cost, points int, window, block time.Duration) (Result, error) {
	keys := []string{key, key + ":block"}

	reply, err := r.consume.Run(ctx, r.dB, keys, points, ceilSeconds(window), ceilSeconds(block), cost).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(reply) != 3 {
		return Result{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, reply)
	}

	return Result{
		Allowed:         reply[0] == 1,
		RemainingPoints: int(reply[1]),
		RetryAfter:      time.Duration(reply[2]) * time.Second,
	}, nil
}

// ceilSeconds converts to whole seconds for EXPIRE, never below one: a daily
// window asked for just before midnight must still expire, not live forever.
func ceilSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

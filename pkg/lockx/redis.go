package lockx

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/logx"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClient is the part of *redis.Client the locker uses, including what
// redis.Script needs to run the release script.
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd
	ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

// RedisLocker is a single-instance Redis lock (SET NX PX + token-checked release).
type RedisLocker struct {
	client RedisClient
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client RedisClient, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "devjobs:lock:",
		ttl:    ttl,
		wait:   wait,
	}
}

func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := r.prefix + key
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	ticker := time.NewTicker(retryDelay)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return r.releaser(fullKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNotAcquired().WithDetail("key", key).WithCause(ctx.Err())
		case <-ticker.C:
		}
	}
}

func (r *RedisLocker) releaser(fullKey, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		// The request context may already be done; release on a fresh one.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, r.client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
			logx.Warnf("failed to release lock %s: %v", fullKey, err)
		}
	}
}

package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cooldown:"

// checkAndRecordScript makes the read-compare-write atomic on the
// server. Returns -1 when the attempt is allowed (timestamp recorded),
// otherwise the remaining window in milliseconds. Keys expire with the
// window so stale entries clean themselves up.
var checkAndRecordScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
if last then
  local elapsed = now - tonumber(last)
  if elapsed < window then
    return window - elapsed
  end
end
redis.call('SET', KEYS[1], now, 'PX', window)
return -1
`)

// RedisStore is the durable, multi-instance-safe throttle backend.
type RedisStore struct {
	client *redis.Client
	window time.Duration
}

func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisStore{client: client, window: window}
}

func (s *RedisStore) CheckAndRecord(ctx context.Context, email string, now time.Time) (Result, error) {
	res, err := checkAndRecordScript.Run(ctx, s.client,
		[]string{keyPrefix + email},
		now.UnixMilli(), s.window.Milliseconds(),
	).Int64()
	if err != nil {
		return Result{}, fmt.Errorf("cooldown check for %s: %w", email, err)
	}

	if res < 0 {
		return Result{Allowed: true}, nil
	}
	return Result{DaysRemaining: daysRemaining(time.Duration(res) * time.Millisecond)}, nil
}

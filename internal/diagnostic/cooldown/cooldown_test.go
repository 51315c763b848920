package cooldown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, window time.Duration) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, window)
}

// Both backends must satisfy the same contract.
func stores(t *testing.T, window time.Duration) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(window),
		"redis":  newRedisStore(t, window),
	}
}

func TestCheckAndRecord_FirstSubmissionAllowed(t *testing.T) {
	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			res, err := store.CheckAndRecord(context.Background(), "anya@example.com", time.Now())
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Zero(t, res.DaysRemaining)
		})
	}
}

func TestCheckAndRecord_ThrottledInsideWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			res, err := store.CheckAndRecord(context.Background(), "anya@example.com", base)
			require.NoError(t, err)
			require.True(t, res.Allowed)

			// 2 days later: 5 days remain.
			res, err = store.CheckAndRecord(context.Background(), "anya@example.com", base.Add(2*24*time.Hour))
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 5, res.DaysRemaining)
		})
	}
}

func TestCheckAndRecord_DeniedAttemptDoesNotExtendWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			_, err := store.CheckAndRecord(context.Background(), "anya@example.com", base)
			require.NoError(t, err)

			// Denied attempt on day 6.
			res, err := store.CheckAndRecord(context.Background(), "anya@example.com", base.Add(6*24*time.Hour))
			require.NoError(t, err)
			require.False(t, res.Allowed)

			// Day 7 from the FIRST submission must be allowed; a rejected
			// attempt never overwrites the recorded timestamp.
			res, err = store.CheckAndRecord(context.Background(), "anya@example.com", base.Add(7*24*time.Hour))
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestCheckAndRecord_AllowedAfterWindowRecordsNewTimestamp(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			_, err := store.CheckAndRecord(context.Background(), "anya@example.com", base)
			require.NoError(t, err)

			res, err := store.CheckAndRecord(context.Background(), "anya@example.com", base.Add(8*24*time.Hour))
			require.NoError(t, err)
			require.True(t, res.Allowed)

			// The 8-day submission restarted the window.
			res, err = store.CheckAndRecord(context.Background(), "anya@example.com", base.Add(9*24*time.Hour))
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 6, res.DaysRemaining)
		})
	}
}

func TestCheckAndRecord_PartialDayRoundsUp(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			_, err := store.CheckAndRecord(context.Background(), "anya@example.com", base)
			require.NoError(t, err)

			// 6 days and 23 hours in: one hour left still counts as 1 day.
			res, err := store.CheckAndRecord(context.Background(), "anya@example.com",
				base.Add(6*24*time.Hour+23*time.Hour))
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 1, res.DaysRemaining)
		})
	}
}

func TestCheckAndRecord_EmailsIndependent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			_, err := store.CheckAndRecord(context.Background(), "a@example.com", base)
			require.NoError(t, err)

			res, err := store.CheckAndRecord(context.Background(), "b@example.com", base.Add(time.Minute))
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

// Concurrent submissions from the same email must let exactly one pass.
func TestCheckAndRecord_ConcurrentSameEmail(t *testing.T) {
	for name, store := range stores(t, DefaultWindow) {
		t.Run(name, func(t *testing.T) {
			const attempts = 32
			now := time.Now()

			var wg sync.WaitGroup
			allowed := make(chan bool, attempts)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := store.CheckAndRecord(context.Background(), "race@example.com", now)
					if err == nil {
						allowed <- res.Allowed
					}
				}()
			}
			wg.Wait()
			close(allowed)

			count := 0
			for a := range allowed {
				if a {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestRedisStore_KeyExpiresWithWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, DefaultWindow)

	_, err := store.CheckAndRecord(context.Background(), "anya@example.com", time.Now())
	require.NoError(t, err)

	ttl := client.PTTL(context.Background(), "cooldown:anya@example.com").Val()
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, DefaultWindow)
}

package cooldown

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the process-local reference implementation. State does
// not survive restarts and is not shared across instances; use
// RedisStore for multi-instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]time.Time
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{
		window:  window,
		entries: make(map[string]time.Time),
	}
}

func (s *MemoryStore) CheckAndRecord(_ context.Context, email string, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.entries[email]; ok {
		elapsed := now.Sub(last)
		if elapsed < s.window {
			return Result{DaysRemaining: daysRemaining(s.window - elapsed)}, nil
		}
	}

	s.entries[email] = now
	return Result{Allowed: true}, nil
}

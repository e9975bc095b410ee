package rate_limiter

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage mirrors the Redis consume step in process memory. Counters
// are not shared across processes, so it only backs tests and single-instance
// development runs.
type MemoryStorage struct {
	mu      *sync.Mutex
	now     func() time.Time
	windows map[string]*window
	blocks  map[string]time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

var _ Storer = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		mu:      &sync.Mutex{},
		now:     time.Now,
		windows: make(map[string]*window),
		blocks:  make(map[string]time.Time),
	}
}

func (m *MemoryStorage) Consume(_ context.Context, key string, cost, points int, windowDur, blockDur time.Duration) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if until, ok := m.blocks[key]; ok {
		if now.Before(until) {
			return Result{Allowed: false, RemainingPoints: 0, RetryAfter: until.Sub(now)}, nil
		}
		delete(m.blocks, key)
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(windowDur)}
		m.windows[key] = w
	}

	w.count += cost
	if w.count > points {
		m.blocks[key] = now.Add(blockDur)
		delete(m.windows, key)
		return Result{Allowed: false, RemainingPoints: 0, RetryAfter: blockDur}, nil
	}

	return Result{
		Allowed:         true,
		RemainingPoints: points - w.count,
		RetryAfter:      w.resetAt.Sub(now),
	}, nil
}

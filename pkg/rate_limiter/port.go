package rate_limiter

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStoreUnavailable wraps any failure to reach the backing counter
	// store. Callers must treat it as a deny, never as an allow.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")

	// ErrUnknownAction is returned when no policy was configured for an action.
	ErrUnknownAction = errors.New("no rate limit policy for action")
)

// Limiter is the per-tier consumption contract.
type Limiter interface {
	Consume(ctx context.Context, scopeKey string, cost int) (Result, error)
}

// Storer applies one atomic fixed-window consumption step for a key. The
// store is the only shared mutable state of the limiter and is the source of
// truth across processes, so the step must stay correct under arbitrary
// concurrent access.
type Storer interface {
	Consume(ctx context.Context, key string, cost, points int, window, block time.Duration) (Result, error)
}

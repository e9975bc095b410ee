package rate_limiter

import (
	"context"
	"time"

	"mytunes-api/pkg/enum"
)

// FixedWindow consumes points from a fixed budget inside a rolling window and
// blocks the scope key once the budget is exceeded. A daily tier ignores the
// configured Window/Block and recomputes both from the wall clock on every
// consumption, so its window always ends at the next local midnight.
type FixedWindow struct {
	ID     string        // counter namespace, e.g. "log-in-consecutive-limiter"
	Tier   enum.Tier
	Points int           // budget per window
	Window time.Duration // rolling window length (consecutive tier)
	Block  time.Duration // how long a key stays blocked after exhaustion
	Now    func() time.Time

	storage Storer
}

func NewFixedWindow(storage Storer, options *FixedWindow) Limiter {
	options.storage = storage
	if options.Now == nil {
		options.Now = time.Now
	}
	return options
}

func (fw *FixedWindow) Consume(ctx context.Context, scopeKey string, cost int) (Result, error) {
	window, block := fw.Window, fw.Block
	if fw.Tier == enum.TierDaily {
		remaining := UntilNextMidnight(fw.Now())
		window, block = remaining, remaining
	}

	return fw.storage.Consume(ctx, fw.ID+":"+scopeKey, cost, fw.Points, window, block)
}

// UntilNextMidnight reports how long is left of the current calendar day in
// now's location. Never zero: at midnight exactly it reports a full day.
func UntilNextMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	next := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

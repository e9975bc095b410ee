package rate_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytunes-api/pkg/enum"
)

func TestUntilNextMidnight(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "one second before midnight",
			now:  time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC),
			want: time.Second,
		},
		{
			name: "one second after midnight",
			now:  time.Date(2024, 5, 2, 0, 0, 1, 0, time.UTC),
			want: 23*time.Hour + 59*time.Minute + 59*time.Second,
		},
		{
			name: "exactly midnight yields a full day",
			now:  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			want: 24 * time.Hour,
		},
		{
			name: "noon",
			now:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			want: 12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UntilNextMidnight(tt.now))
		})
	}
}

// recordingStorer captures the window/block the limiter asked for.
type recordingStorer struct {
	key    string
	window time.Duration
	block  time.Duration
	result Result
	err    error
}

func (r *recordingStorer) Consume(_ context.Context, key string, cost, points int, window, block time.Duration) (Result, error) {
	r.key = key
	r.window = window
	r.block = block
	return r.result, r.err
}

func TestFixedWindow_ConsecutiveUsesConfiguredWindow(t *testing.T) {
	storer := &recordingStorer{result: Result{Allowed: true, RemainingPoints: 2}}
	fw := NewFixedWindow(storer, &FixedWindow{
		ID:     "create-user-consecutive-limiter",
		Tier:   enum.TierConsecutive,
		Points: 3,
		Window: 600 * time.Second,
		Block:  3600 * time.Second,
	})

	res, err := fw.Consume(context.Background(), "10.0.0.1", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, "create-user-consecutive-limiter:10.0.0.1", storer.key)
	assert.Equal(t, 600*time.Second, storer.window)
	assert.Equal(t, 3600*time.Second, storer.block)
}

func TestFixedWindow_DailyRecomputesWindowEachConsume(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	storer := &recordingStorer{result: Result{Allowed: true, RemainingPoints: 4}}
	fw := NewFixedWindow(storer, &FixedWindow{
		ID:     "create-user-daily-limiter",
		Tier:   enum.TierDaily,
		Points: 5,
		Now:    func() time.Time { return now },
	})

	_, err := fw.Consume(context.Background(), "10.0.0.1", 1)
	require.NoError(t, err)
	assert.Equal(t, time.Second, storer.window, "window runs out at midnight")
	assert.Equal(t, time.Second, storer.block, "block lifts at midnight too")

	// Two seconds later it is a new day and a fresh near-full-day window.
	now = now.Add(2 * time.Second)
	_, err = fw.Consume(context.Background(), "10.0.0.1", 1)
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour+59*time.Minute+59*time.Second, storer.window)
}

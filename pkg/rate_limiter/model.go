package rate_limiter

import (
	"time"

	"mytunes-api/pkg/enum"
)

// Result is the outcome of a single consumption attempt against one tier.
type Result struct {
	Allowed         bool          `json:"allowed"`
	RemainingPoints int           `json:"remaining_points"`
	RetryAfter      time.Duration `json:"retry_after"`
}

// Exhausted reports whether the gate must deny the action on behalf of this
// tier: either the key is blocked or the last point of the budget is gone.
func (r Result) Exhausted() bool {
	return !r.Allowed || r.RemainingPoints == 0
}

// TierResult pairs a Result with the tier that produced it.
type TierResult struct {
	Tier   enum.Tier
	Result Result
}

// Decision aggregates the tier results for one gated action. The action is
// allowed only when every tier still has budget left.
type Decision struct {
	Allowed bool
	Tiers   []TierResult
}

// RetryAfter returns the longest wait among the tiers that denied, zero when
// the decision allowed the action.
func (d Decision) RetryAfter() time.Duration {
	var longest time.Duration
	for _, tr := range d.Tiers {
		if tr.Result.Exhausted() && tr.Result.RetryAfter > longest {
			longest = tr.Result.RetryAfter
		}
	}
	return longest
}

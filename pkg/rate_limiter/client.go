package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mytunes-api/pkg/config"
	"mytunes-api/pkg/enum"
)

// Actions guarded by the two-tier gate. Each owns four counter namespaces in
// the store: <action>-consecutive-limiter and <action>-daily-limiter.
const (
	ActionCreateUser = "create-user"
	ActionLogIn      = "log-in"
)

// Servicer is the gate-facing contract: consume one point from every tier of
// an action and report whether the action may proceed.
type Servicer interface {
	Check(ctx context.Context, action, scopeKey string) (Decision, error)
}

type tierLimiter struct {
	tier enum.Tier
	rl   Limiter
}

type Client struct {
	limiters map[string][]tierLimiter
}

func New() *Client {
	var c Client
	c.setActionLimiters(NewRedis(), config.GetConfig().Actions, nil)
	return &c
}

// NewWithStorage wires the client against an explicit storage, policy table
// and clock. The clock only drives the daily tier's midnight computation.
func NewWithStorage(storage Storer, actions map[string]config.ActionPolicies, now func() time.Time) *Client {
	var c Client
	c.setActionLimiters(storage, actions, now)
	return &c
}

func limiterID(action string, tier enum.Tier) string {
	return fmt.Sprintf("%s-%s-limiter", action, tier)
}

func (c *Client) setActionLimiters(storage Storer, actions map[string]config.ActionPolicies, now func() time.Time) {
	c.limiters = make(map[string][]tierLimiter, len(actions))
	for action, policies := range actions {
		consecutive := NewFixedWindow(storage, &FixedWindow{
			ID:     limiterID(action, enum.TierConsecutive),
			Tier:   enum.TierConsecutive,
			Points: policies.Consecutive.Points,
			Window: time.Duration(policies.Consecutive.WindowSeconds) * time.Second,
			Block:  time.Duration(policies.Consecutive.BlockSeconds) * time.Second,
			Now:    now,
		})
		daily := NewFixedWindow(storage, &FixedWindow{
			ID:     limiterID(action, enum.TierDaily),
			Tier:   enum.TierDaily,
			Points: policies.Daily.Points,
			Now:    now,
		})

		c.limiters[action] = []tierLimiter{
			{tier: enum.TierConsecutive, rl: consecutive},
			{tier: enum.TierDaily, rl: daily},
		}
	}
}

// Check consumes cost 1 from both tiers of the action; every tier is charged
// before the decision is made. The action is denied as soon as any tier is
// blocked or left with zero points.
func (c *Client) Check(ctx context.Context, action, scopeKey string) (Decision, error) {
	tiers, ok := c.limiters[action]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	decision := Decision{Allowed: true}
	for _, tl := range tiers {
		res, err := tl.rl.Consume(ctx, scopeKey, 1)
		if err != nil {
			return Decision{}, fmt.Errorf("consume %s %s: %w", action, tl.tier, err)
		}

		decision.Tiers = append(decision.Tiers, TierResult{Tier: tl.tier, Result: res})
		if res.Exhausted() {
			decision.Allowed = false
		}
	}

	if !decision.Allowed {
		slog.Info("rate limit hit", "action", action, "scope_key", scopeKey, "retry_after", decision.RetryAfter())
	}

	return decision, nil
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mytunes-api/internal/metrics"
	"mytunes-api/pkg/rate_limiter"
)

const rateLimitExceededMessage = "you have reached the maximum number of requests or actions allowed within a certain time frame"

type gateServicer interface {
	Check(ctx context.Context, action, scopeKey string) (rate_limiter.Decision, error)
}

// RateLimitAction gates an unauthenticated sensitive action behind both of
// its limiter tiers, keyed by client IP. A store failure denies the request:
// the gate fails closed rather than letting unlimited attempts through.
func RateLimitAction(servicer gateServicer, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := servicer.Check(c.Request.Context(), action, c.ClientIP())
		if err != nil {
			metrics.LimiterStoreErrors.Inc()
			metrics.GateDecisions.WithLabelValues(action, "error").Inc()
			slog.Error("rate limit check failed, denying", "action", action, "ip", c.ClientIP(), "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{"code": "service_unavailable", "message": "service temporarily unavailable, try again later"},
			})
			return
		}

		if !decision.Allowed {
			metrics.GateDecisions.WithLabelValues(action, "denied").Inc()

			retryAfter := int(decision.RetryAfter().Seconds())
			limits := gin.H{}
			for _, tr := range decision.Tiers {
				limits[tr.Tier.String()] = gin.H{
					"remaining_points":    tr.Result.RemainingPoints,
					"retry_after_seconds": int(tr.Result.RetryAfter.Seconds()),
				}
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":               gin.H{"code": "rate_limited", "message": rateLimitExceededMessage},
				"retry_after_seconds": retryAfter,
				"limits":              limits,
			})
			return
		}

		metrics.GateDecisions.WithLabelValues(action, "allowed").Inc()
		c.Next()
	}
}

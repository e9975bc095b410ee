package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured line per finished request.
func AccessLog(c *gin.Context) {
	c.Next()

	logger := slog.With(
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
	)

	if id, exists := c.Get(RequestIDContextValueKey); exists {
		logger = logger.With("request_id", id)
	}
	if arrival, exists := c.Get(ReqArrivalTimeContextValueKey); exists {
		logger = logger.With("duration_ms", time.Since(arrival.(time.Time)).Milliseconds())
	}

	logger.Info("request handled")
}

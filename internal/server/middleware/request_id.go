package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ReqArrivalTimeContextValueKey = "reqArrivalTime"
	RequestIDContextValueKey      = "requestId"

	requestIDHeader = "X-Request-ID"
)

// RequestContext stamps every request with its arrival time and a request id,
// minting one when the client didn't send its own.
func RequestContext(c *gin.Context) {
	c.Set(ReqArrivalTimeContextValueKey, time.Now())

	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDContextValueKey, id)
	c.Header(requestIDHeader, id)

	c.Next()
}

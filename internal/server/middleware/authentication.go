package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mytunes-api/internal/metrics"
	"mytunes-api/pkg/token"
)

const (
	IdentityContextValueKey = "authenticatedIdentity"

	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

type tokenVerifier interface {
	Verify(raw string) (token.Identity, error)
}

// BearerAuth guards authenticated routes. The Authorization header must carry
// a literal Bearer prefix before the token is even parsed; each verification
// failure kind gets its own error code so clients can tell "log in again"
// from "retry".
func BearerAuth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			metrics.TokenVerifications.WithLabelValues("missing").Inc()
			abortUnauthorized(c, "token_missing", "authorization header doesn't have required pattern")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		identity, err := tokens.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired):
				metrics.TokenVerifications.WithLabelValues("expired").Inc()
				abortUnauthorized(c, "token_expired", "token has expired, log in again")
			case errors.Is(err, token.ErrInvalidSignature):
				metrics.TokenVerifications.WithLabelValues("invalid_signature").Inc()
				abortUnauthorized(c, "token_invalid", "token signature could not be verified")
			default:
				metrics.TokenVerifications.WithLabelValues("malformed").Inc()
				abortUnauthorized(c, "token_malformed", "token could not be parsed")
			}
			return
		}

		metrics.TokenVerifications.WithLabelValues("ok").Inc()
		c.Set(IdentityContextValueKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by BearerAuth.
func IdentityFromContext(c *gin.Context) (token.Identity, bool) {
	value, exists := c.Get(IdentityContextValueKey)
	if !exists {
		return token.Identity{}, false
	}
	identity, ok := value.(token.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"user":  nil,
		"token": "",
		"error": gin.H{"code": code, "message": message},
	})
}

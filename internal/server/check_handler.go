package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mytunes-api/internal/server/middleware"
)

// CheckTokenHandler answers a valid bearer token with the identity it
// carries and a freshly signed replacement, giving active clients a
// rolling session.
func CheckTokenHandler(tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			writeError(c, http.StatusUnauthorized, "token_missing", "no authenticated identity")
			return
		}

		signed, err := tokens.Issue(identity)
		if err != nil {
			slog.Error("re-signing token failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not refresh token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"firstName": identity.FirstName,
				"lastName":  identity.LastName,
				"email":     identity.Email,
			},
			"token": signed,
		})
	}
}

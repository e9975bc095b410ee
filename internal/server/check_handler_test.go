package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytunes-api/internal/server/middleware"
	"mytunes-api/pkg/token"
)

func TestCheckTokenHandlerRefreshesToken(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens := token.NewService("secret", 72*time.Hour, token.WithClock(func() time.Time { return clock }))

	original, err := tokens.Issue(token.Identity{
		SubjectID: "42",
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)

	// Two days pass; the token is still inside its 3-day life.
	clock = clock.Add(48 * time.Hour)

	r := gin.New()
	r.GET("/check-token", middleware.BearerAuth(tokens), CheckTokenHandler(tokens))

	req := httptest.NewRequest(http.MethodGet, "/check-token", nil)
	req.Header.Set("Authorization", "Bearer "+original)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "grace@example.com", payload.User.Email)
	assert.NotEqual(t, original, payload.Token, "a fresh token is minted")

	// The replacement lives a full ttl from now, so it still verifies
	// after the original would have died.
	clock = clock.Add(25 * time.Hour)
	identity, err := tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", identity.SubjectID)

	_, err = tokens.Verify(original)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestCheckTokenHandlerRejectsExpiredToken(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens := token.NewService("secret", time.Hour, token.WithClock(func() time.Time { return clock }))

	original, err := tokens.Issue(token.Identity{SubjectID: "42"})
	require.NoError(t, err)

	clock = clock.Add(2 * time.Hour)

	r := gin.New()
	r.GET("/check-token", middleware.BearerAuth(tokens), CheckTokenHandler(tokens))

	req := httptest.NewRequest(http.MethodGet, "/check-token", nil)
	req.Header.Set("Authorization", "Bearer "+original)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_expired")
}

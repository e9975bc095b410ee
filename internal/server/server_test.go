package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytunes-api/pkg/rate_limiter"
	"mytunes-api/pkg/token"
)

type allowAllGate struct{}

func (allowAllGate) Check(context.Context, string, string) (rate_limiter.Decision, error) {
	return rate_limiter.Decision{Allowed: true}, nil
}

type fakeRepo struct {
	*fakeUserStore
	*fakeCatalogStore
	*fakeEventStore
}

func newTestServer(t *testing.T, opts ...Option) *Config {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
rate_limits:
  create-user:
    consecutive: {points: 3, window_seconds: 600, block_seconds: 3600}
    daily: {points: 5}
  log-in:
    consecutive: {points: 5, window_seconds: 300, block_seconds: 300}
    daily: {points: 15}
metrics:
  enabled: true
  path: /metrics
`), 0o644))

	t.Setenv("APP_VERSION", "1")
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_REDIS_ADDR", "localhost:6379")
	t.Setenv("APP_JWT_SECRET", "secret")
	t.Setenv("APP_CONFIG_FILE", configFile)

	s := NewServer(Dependencies{
		Gate:   allowAllGate{},
		Tokens: token.NewService("secret", time.Hour),
		Repo: fakeRepo{
			fakeUserStore:    newFakeUserStore(),
			fakeCatalogStore: &fakeCatalogStore{},
			fakeEventStore:   &fakeEventStore{},
		},
	}, opts...)
	s.registerMiddleware()
	s.registerRoutes()
	return s
}

func TestServerRouteTable(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "root greeting", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics exposed", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "songs listing is public", method: http.MethodGet, path: "/songs", wantStatus: http.StatusOK},
		{name: "events listing is public", method: http.MethodGet, path: "/events", wantStatus: http.StatusOK},
		{name: "folder paths are public", method: http.MethodGet, path: "/folder-paths", wantStatus: http.StatusOK},
		{name: "check-token needs a bearer token", method: http.MethodGet, path: "/check-token", wantStatus: http.StatusUnauthorized},
		{name: "local songs need a bearer token", method: http.MethodPost, path: "/local-songs", wantStatus: http.StatusUnauthorized},
		{name: "local directory needs a bearer token", method: http.MethodPost, path: "/local-directory", wantStatus: http.StatusUnauthorized},
		{name: "favorite needs a bearer token", method: http.MethodPatch, path: "/favorite", wantStatus: http.StatusUnauthorized},
		{name: "unfavorite needs a bearer token", method: http.MethodPatch, path: "/unfavorite", wantStatus: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestServerGatedRoutesConsultTheGate(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(s.handler, "/create-user", validCreateUserBody())
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(s.handler, "/user-log-in", map[string]string{
		"email":    "grace@example.com",
		"password": "Compiler1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

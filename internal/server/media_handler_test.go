package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaRouter(contentDir string) *gin.Engine {
	r := gin.New()
	r.GET("/image/:name", ImageFileHandler(contentDir))
	r.GET("/song/:name", SongFileHandler(contentDir))
	r.GET("/video/:name", VideoFileHandler(contentDir))
	return r
}

func seedContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range map[string]string{
		"image/cover.png":       "png bytes",
		"music/queen/night.mp3": "mp3 bytes",
		"video/queen/live.mp4":  "mp4 bytes",
	} {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func getMedia(r *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMediaHandlersServeFiles(t *testing.T) {
	r := newMediaRouter(seedContentDir(t))

	testCases := []struct {
		name string
		path string
		body string
	}{
		{name: "image", path: "/image/cover.png", body: "png bytes"},
		{name: "song under its artist", path: "/song/queen_night.mp3", body: "mp3 bytes"},
		{name: "video under its artist", path: "/video/queen_live.mp4", body: "mp4 bytes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getMedia(r, tc.path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}

func TestMediaHandlersRejectBadNames(t *testing.T) {
	r := newMediaRouter(seedContentDir(t))

	testCases := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "wrong image extension", path: "/image/cover.gif", wantStatus: http.StatusBadRequest},
		{name: "image name with dot-dot", path: "/image/..png", wantStatus: http.StatusBadRequest},
		{name: "song without artist prefix", path: "/song/night.mp3", wantStatus: http.StatusBadRequest},
		{name: "song with wrong extension", path: "/song/queen_night.wav", wantStatus: http.StatusBadRequest},
		{name: "video with wrong extension", path: "/video/queen_live.mov", wantStatus: http.StatusBadRequest},
		{name: "missing image", path: "/image/ghost.png", wantStatus: http.StatusNotFound},
		{name: "missing song", path: "/song/queen_ghost.mp3", wantStatus: http.StatusNotFound},
		{name: "song for unknown artist", path: "/song/abba_night.mp3", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getMedia(r, tc.path)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

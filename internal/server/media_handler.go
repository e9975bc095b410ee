package server

import (
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// File names are matched against strict allowlists before touching the
// filesystem; anything with a path separator or an unexpected extension
// is rejected outright. Song and video names carry the owning artist in
// front of an underscore, mirroring the on-disk layout
// content/music/<artist>/<file> and content/video/<artist>/<file>.
var (
	imageNamePattern = regexp.MustCompile(`^[A-Za-z0-9. -]+\.(jpg|jpeg|png|webp)$`)
	songNamePattern  = regexp.MustCompile(`^[A-Za-z0-9. -]+_[A-Za-z0-9. -]+\.mp3$`)
	videoNamePattern = regexp.MustCompile(`^[A-Za-z0-9. -]+_[A-Za-z0-9. -]+\.mp4$`)
)

func ImageFileHandler(contentDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !imageNamePattern.MatchString(name) || strings.Contains(name, "..") {
			writeError(c, http.StatusBadRequest, "invalid_name", "only jpg, jpeg, png and webp images are served")
			return
		}
		serveFile(c, filepath.Join(contentDir, "image", name))
	}
}

func SongFileHandler(contentDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !songNamePattern.MatchString(name) || strings.Contains(name, "..") {
			writeError(c, http.StatusBadRequest, "invalid_name", "song names must look like artist_file.mp3")
			return
		}
		artist, file, _ := strings.Cut(name, "_")
		serveFile(c, filepath.Join(contentDir, "music", artist, file))
	}
}

func VideoFileHandler(contentDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !videoNamePattern.MatchString(name) || strings.Contains(name, "..") {
			writeError(c, http.StatusBadRequest, "invalid_name", "video names must look like artist_file.mp4")
			return
		}
		artist, file, _ := strings.Cut(name, "_")
		serveFile(c, filepath.Join(contentDir, "video", artist, file))
	}
}

func serveFile(c *gin.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(c, http.StatusNotFound, "not_found", "file does not exist")
		return
	}
	c.File(path)
}

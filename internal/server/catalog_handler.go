package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mytunes-api/internal/server/middleware"
	"mytunes-api/internal/store"
	"mytunes-api/pkg/enum"
)

type catalogStore interface {
	ListSongs(ctx context.Context) ([]store.Song, error)
	InsertSongs(ctx context.Context, songs []store.Song) ([]store.Song, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (store.Song, error)
	ListDirectories(ctx context.Context) ([]store.Directory, error)
	CreateDirectory(ctx context.Context, d store.Directory) (store.Directory, error)
}

type localSongDTO struct {
	Type             string   `json:"type" binding:"required"`
	Title            string   `json:"title" binding:"required"`
	Artist           string   `json:"artist" binding:"required"`
	CoArtists        []string `json:"coArtists"`
	Album            string   `json:"album"`
	Image            string   `json:"image"`
	File             string   `json:"file" binding:"required"`
	ParentalAdvisory bool     `json:"parentalAdvisory"`
}

func ListSongsHandler(catalog catalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		songs, err := catalog.ListSongs(c.Request.Context())
		if err != nil {
			slog.Error("listing songs failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not list songs")
			return
		}
		c.JSON(http.StatusOK, songs)
	}
}

func CreateLocalSongsHandler(catalog catalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []localSongDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		if len(body) == 0 {
			writeError(c, http.StatusBadRequest, "invalid_body", "at least one song is required")
			return
		}

		identity, _ := middleware.IdentityFromContext(c)

		songs := make([]store.Song, 0, len(body))
		for i, dto := range body {
			songType := enum.SongType(dto.Type)
			if !songType.Valid() {
				writeError(c, http.StatusBadRequest, "invalid_body",
					fmt.Sprintf("song %d: unknown type %q", i, dto.Type))
				return
			}
			songs = append(songs, store.Song{
				Type:             songType,
				Title:            dto.Title,
				Artist:           dto.Artist,
				CoArtists:        dto.CoArtists,
				Album:            dto.Album,
				Image:            dto.Image,
				File:             dto.File,
				ParentalAdvisory: dto.ParentalAdvisory,
				CreatedBy:        identity.SubjectID,
			})
		}

		created, err := catalog.InsertSongs(c.Request.Context(), songs)
		if err != nil {
			slog.Error("inserting songs failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not save songs")
			return
		}

		slog.Info("local songs registered", "count", len(created), "user_id", identity.SubjectID)
		c.JSON(http.StatusCreated, created)
	}
}

// FavoriteSongHandler flips the favorite flag on a single song. The
// request body is the bare JSON-encoded song id.
func FavoriteSongHandler(catalog catalogStore, favorite bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if err := c.ShouldBindJSON(&id); err != nil || id == "" {
			writeError(c, http.StatusBadRequest, "invalid_body", "request body must be a song id string")
			return
		}

		song, err := catalog.SetFavorite(c.Request.Context(), id, favorite)
		if errors.Is(err, store.ErrNotFound) {
			writeError(c, http.StatusNotFound, "not_found", "song does not exist")
			return
		}
		if err != nil {
			slog.Error("updating favorite failed", "error", err, "song_id", id)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not update song")
			return
		}
		c.JSON(http.StatusOK, song)
	}
}

func ListFolderPathsHandler(catalog catalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		dirs, err := catalog.ListDirectories(c.Request.Context())
		if err != nil {
			slog.Error("listing directories failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not list directories")
			return
		}
		paths := make([]string, 0, len(dirs))
		for _, d := range dirs {
			paths = append(paths, d.Path)
		}
		c.JSON(http.StatusOK, paths)
	}
}

// CreateLocalDirectoryHandler registers a directory path. The request
// body is the bare JSON-encoded path string.
func CreateLocalDirectoryHandler(catalog catalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var path string
		if err := c.ShouldBindJSON(&path); err != nil || strings.TrimSpace(path) == "" {
			writeError(c, http.StatusBadRequest, "invalid_body", "request body must be a directory path string")
			return
		}

		identity, _ := middleware.IdentityFromContext(c)

		created, err := catalog.CreateDirectory(c.Request.Context(), store.Directory{
			Path:      path,
			CreatedBy: identity.SubjectID,
		})
		if err != nil {
			slog.Error("creating directory failed", "error", err, "path", path)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not save directory")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

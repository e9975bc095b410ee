package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mytunes-api/internal/store"
	"mytunes-api/pkg/enum"
)

type eventStore interface {
	ListEventsByStatus(ctx context.Context, statuses []enum.EventStatus) ([]store.Event, error)
}

// visibleEventStatuses are the lifecycle states shown to clients;
// passed and canceled events stay out of the listing.
var visibleEventStatuses = []enum.EventStatus{
	enum.EventStatusComing,
	enum.EventStatusActive,
	enum.EventStatusLive,
}

func ListEventsHandler(events eventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := events.ListEventsByStatus(c.Request.Context(), visibleEventStatuses)
		if err != nil {
			slog.Error("listing events failed", "error", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "could not list events")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type EventsHandler struct {
	hub *notify.Hub
	log zerolog.Logger
}

func NewEventsHandler(hub *notify.Hub, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log}
}

// Stream upgrades to a websocket that relays change notifications. The
// upgrader writes its own error response on failure.
func (h *EventsHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "events_unavailable", "Live updates are not available.")
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		h.log.Debug().Err(err).Msg("websocket upgrade")
	}
}

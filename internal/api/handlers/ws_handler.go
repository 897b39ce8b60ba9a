package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
)

// StreamServer upgrades a request into a session event stream.
type StreamServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) error
}

type StreamHandler struct {
	hub StreamServer
}

func NewStreamHandler(hub StreamServer) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream handles GET /ws. On success the upgrader has already written the
// response, so only a failed upgrade is recorded.
func (h *StreamHandler) Stream(c *gin.Context) {
	session := middleware.GetSession(c)
	if err := h.hub.ServeWS(c.Writer, c.Request, session.ID); err != nil {
		_ = c.Error(err)
	}
}

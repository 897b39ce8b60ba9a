package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
	"movi/internal/domain/entities"
	"movi/internal/mapview"
	"movi/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionManager
}

func NewSessionHandler(sessions *services.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type SessionResponse struct {
	SessionID string            `json:"session_id"`
	Mode      entities.ViewMode `json:"mode"`
	Ride      services.RideView `json:"ride"`
	Marker    mapview.Marker    `json:"marker"`
}

func sessionResponse(s *services.Session) SessionResponse {
	return SessionResponse{
		SessionID: s.ID,
		Mode:      s.Mode(),
		Ride:      s.Ride.View(),
		Marker:    s.Ride.Marker(),
	}
}

// CreateSession handles POST /sessions. The returned session_id is the bearer
// token for every other call.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionResponse(middleware.GetSession(c)))
}

// CloseSession handles DELETE /session
func (h *SessionHandler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Request.Context(), middleware.GetSession(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SetMode handles PUT /session/mode, the passenger/driver toggle.
func (h *SessionHandler) SetMode(c *gin.Context) {
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := entities.ParseViewMode(req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	session := middleware.GetSession(c)
	session.SetMode(mode)
	c.JSON(http.StatusOK, sessionResponse(session))
}

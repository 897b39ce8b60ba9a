package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
	"movi/internal/services"
)

type SupportHandler struct {
	support *services.SupportService
}

func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// GetMessages handles GET /support/messages
func (h *SupportHandler) GetMessages(c *gin.Context) {
	history, err := h.support.History(c.Request.Context(), middleware.GetSession(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage handles POST /support/messages. It blocks until the reply (or
// its fallback) is known.
func (h *SupportHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.support.Send(c.Request.Context(), middleware.GetSession(c).ID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

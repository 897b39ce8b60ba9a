package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
	"movi/internal/domain/entities"
	"movi/internal/services"
)

// RideHandler serves the passenger side of the ride.
type RideHandler struct{}

func NewRideHandler() *RideHandler {
	return &RideHandler{}
}

type RequestRideRequest struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	VehicleType string `json:"vehicle_type"`
}

// GetRide handles GET /ride
func (h *RideHandler) GetRide(c *gin.Context) {
	session := middleware.GetSession(c)
	c.JSON(http.StatusOK, session.Ride.View())
}

// RequestRide handles POST /ride/request. It answers 202 as soon as the ride
// is REQUESTING; the fare and everything after it arrive over the WebSocket
// (or by polling GET /ride).
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := middleware.GetSession(c)
	// The fare result channel is buffered; nobody has to read it.
	state, _, err := session.Ride.RequestRide(c.Request.Context(), services.RideRequest{
		Pickup:      req.Pickup,
		Destination: req.Destination,
		VehicleType: entities.VehicleType(req.VehicleType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, state)
}

// CancelRide handles POST /ride/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	state, err := middleware.GetSession(c).Ride.Cancel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetRide handles POST /ride/reset ("Book Another Ride")
func (h *RideHandler) ResetRide(c *gin.Context) {
	state, err := middleware.GetSession(c).Ride.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ReportEmergency handles POST /ride/emergency
func (h *RideHandler) ReportEmergency(c *gin.Context) {
	ack, err := middleware.GetSession(c).Ride.ReportEmergency(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
)

// DriverHandler serves the driver console. The console acts on the same ride
// as the passenger view of its session.
type DriverHandler struct{}

func NewDriverHandler() *DriverHandler {
	return &DriverHandler{}
}

// AcceptRide handles POST /driver/ride/accept
func (h *DriverHandler) AcceptRide(c *gin.Context) {
	state, err := middleware.GetSession(c).Ride.AcceptAsDriver(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeclineRide handles POST /driver/ride/decline
func (h *DriverHandler) DeclineRide(c *gin.Context) {
	state, err := middleware.GetSession(c).Ride.DeclineAsDriver(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// CompleteRide handles POST /driver/ride/complete
func (h *DriverHandler) CompleteRide(c *gin.Context) {
	state, err := middleware.GetSession(c).Ride.CompleteAsDriver(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Navigate handles GET /driver/ride/navigate
func (h *DriverHandler) Navigate(c *gin.Context) {
	nav, err := middleware.GetSession(c).Ride.Navigation()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nav)
}

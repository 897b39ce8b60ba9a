package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/middleware"
	"movi/internal/domain/entities"
	"movi/internal/mapview"
)

type MapHandler struct{}

func NewMapHandler() *MapHandler {
	return &MapHandler{}
}

type MapResponse struct {
	Status      entities.RideStatus `json:"status"`
	Marker      mapview.Marker      `json:"marker"`
	Route       *mapview.Route      `json:"route,omitempty"`
	Pickup      mapview.Point       `json:"pickup"`
	Destination mapview.Point       `json:"destination"`
}

// GetMap handles GET /map. Clients poll it while the car is moving.
func (h *MapHandler) GetMap(c *gin.Context) {
	ride := middleware.GetSession(c).Ride

	resp := MapResponse{
		Status:      ride.Snapshot().Status,
		Marker:      ride.Marker(),
		Pickup:      mapview.Pickup,
		Destination: mapview.Destination,
	}
	if route, ok := ride.Route(); ok {
		resp.Route = &route
	}
	c.JSON(http.StatusOK, resp)
}

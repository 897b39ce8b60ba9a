package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/domain/entities"
	"movi/internal/repository/memory"
	"movi/internal/services"
)

// respondError maps domain errors to HTTP status codes.
//
// Go Learning Note — errors.Is:
// Services wrap sentinels with fmt.Errorf("...: %w", err), so a plain `==`
// comparison would miss them. errors.Is walks the wrap chain.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, entities.ErrMissingLocations):
		status = http.StatusBadRequest
		message = "Please enter both pickup and destination locations."
	case errors.Is(err, entities.ErrInvalidVehicleType),
		errors.Is(err, entities.ErrInvalidViewMode),
		errors.Is(err, services.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, memory.ErrDriverNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, services.ErrNoActiveRide),
		errors.Is(err, services.ErrSessionClosed):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movi/internal/domain/entities"
	"movi/internal/services"
)

// CatalogHandler serves the static reference data: vehicle classes and the
// mock driver roster.
type CatalogHandler struct {
	roster *services.RosterService
}

func NewCatalogHandler(roster *services.RosterService) *CatalogHandler {
	return &CatalogHandler{roster: roster}
}

// ListVehicles handles GET /vehicles
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vehicle_types": entities.AllVehicleTypes()})
}

// ListDrivers handles GET /drivers with an optional ?vehicle_type= filter.
func (h *CatalogHandler) ListDrivers(c *gin.Context) {
	var vt entities.VehicleType
	if raw := c.Query("vehicle_type"); raw != "" {
		parsed, err := entities.ParseVehicleType(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		vt = parsed
	}

	drivers, err := h.roster.List(c.Request.Context(), vt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GetDriver handles GET /drivers/:id
func (h *CatalogHandler) GetDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driver id must be a number"})
		return
	}

	driver, err := h.roster.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

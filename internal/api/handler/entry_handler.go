package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/service"
)

type EntryHandler struct {
	parkingService *service.ParkingService
}

func NewEntryHandler(ps *service.ParkingService) *EntryHandler {
	return &EntryHandler{parkingService: ps}
}

// POST /api/v1/entry/park
func (h *EntryHandler) Park(c *gin.Context) {
	var dto domain.ParkRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ticket domain.Ticket
	var err error
	if dto.SpotID != "" {
		ticket, err = h.parkingService.ParkAtSpot(dto.Plate, dto.VehicleType, dto.SpotID)
	} else {
		ticket, err = h.parkingService.ParkFirstFit(dto.Plate, dto.VehicleType)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPlate), errors.Is(err, domain.ErrUnknownVehicleKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrSpotOccupied), errors.Is(err, domain.ErrDuplicateVehicle):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUnsuitableSpot), errors.Is(err, domain.ErrNoSpotAvailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not park vehicle", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// GET /api/v1/entry/available-spots?vehicle_type=Car
func (h *EntryHandler) AvailableSpots(c *gin.Context) {
	vehicleType := c.Query("vehicle_type")
	if vehicleType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_type query parameter is required"})
		return
	}

	spots, err := h.parkingService.AvailableSpotsFor(vehicleType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(spots), "spots": spots})
}

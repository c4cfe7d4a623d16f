package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/service"
)

type ExitHandler struct {
	exitService *service.ExitService
}

func NewExitHandler(es *service.ExitService) *ExitHandler {
	return &ExitHandler{exitService: es}
}

// POST /api/v1/exit/quote
func (h *ExitHandler) Quote(c *gin.Context) {
	var dto domain.QuoteRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.exitService.Quote(c.Request.Context(), dto.Plate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPlate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAwaitingGate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not quote exit", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, bill)
}

// POST /api/v1/exit/pay
func (h *ExitHandler) Pay(c *gin.Context) {
	var dto domain.PayRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.exitService.Pay(c.Request.Context(), dto.Plate, dto.SettleFines, dto.Method)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrExitNotQuoted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrExitNotPaid):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not take payment", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// POST /api/v1/exit/open-gate
func (h *ExitHandler) OpenGate(c *gin.Context) {
	var dto domain.QuoteRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.exitService.OpenGate(c.Request.Context(), dto.Plate)
	if err != nil {
		if errors.Is(err, domain.ErrExitNotPaid) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open gate", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

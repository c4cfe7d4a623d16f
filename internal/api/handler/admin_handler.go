package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
	"parking_system_go/internal/service"
)

type AdminHandler struct {
	parkingService *service.ParkingService
	fineService    *service.FineService
	handicapped    repository.PermitRepository
	reserved       repository.PermitRepository
}

func NewAdminHandler(
	ps *service.ParkingService,
	fs *service.FineService,
	handicapped repository.PermitRepository,
	reserved repository.PermitRepository,
) *AdminHandler {
	return &AdminHandler{
		parkingService: ps,
		fineService:    fs,
		handicapped:    handicapped,
		reserved:       reserved,
	}
}

// GET /api/v1/admin/status
func (h *AdminHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.parkingService.Status())
}

// GET /api/v1/admin/transactions
func (h *AdminHandler) Transactions(c *gin.Context) {
	history := h.parkingService.History()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(history),
		"revenue":      h.parkingService.Revenue(),
		"transactions": history,
	})
}

// GET /api/v1/admin/debts
func (h *AdminHandler) Debts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"debts": h.fineService.Debts()})
}

// GET /api/v1/admin/fine-scheme
func (h *AdminHandler) GetFineScheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scheme": h.fineService.Scheme()})
}

// PUT /api/v1/admin/fine-scheme
func (h *AdminHandler) SetFineScheme(c *gin.Context) {
	var dto domain.FineSchemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.fineService.SetScheme(dto.Scheme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheme": h.fineService.Scheme()})
}

func (h *AdminHandler) permitRepo(c *gin.Context) (repository.PermitRepository, bool) {
	switch c.Param("directory") {
	case "handicapped":
		return h.handicapped, true
	case "reserved":
		return h.reserved, true
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown permit directory"})
		return nil, false
	}
}

// GET /api/v1/admin/permits/:directory
func (h *AdminHandler) ListPermits(c *gin.Context) {
	repo, ok := h.permitRepo(c)
	if !ok {
		return
	}
	plates, err := repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list permits", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(plates), "plates": plates})
}

// POST /api/v1/admin/permits/:directory
func (h *AdminHandler) GrantPermit(c *gin.Context) {
	repo, ok := h.permitRepo(c)
	if !ok {
		return
	}
	var dto domain.PermitRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := repo.Grant(c.Request.Context(), dto.Plate); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPlate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateEntry):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not grant permit", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plate": domain.NormalizePlate(dto.Plate)})
}

// DELETE /api/v1/admin/permits/:directory/:plate
func (h *AdminHandler) RevokePermit(c *gin.Context) {
	repo, ok := h.permitRepo(c)
	if !ok {
		return
	}
	plate := c.Param("plate")
	if err := repo.Revoke(c.Request.Context(), plate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such permit"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke permit", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plate": domain.NormalizePlate(plate)})
}

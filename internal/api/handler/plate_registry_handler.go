package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

// PlateRegistryHandler quản lý hai danh sách đăng ký: biển số được dùng
// chỗ reserved và biển số chủ thẻ OKU.
type PlateRegistryHandler struct {
	parkingService *service.ParkingService
}

func NewPlateRegistryHandler(ps *service.ParkingService) *PlateRegistryHandler {
	return &PlateRegistryHandler{parkingService: ps}
}

func registryStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicateEntry):
		return http.StatusConflict, true
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, true
	default:
		return 0, false
	}
}

// POST /plates/reserved
func (h *PlateRegistryHandler) RegisterReserved(c *gin.Context) {
	var dto domain.PlateRegistrationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}
	if err := h.parkingService.RegisterReservedPlate(c.Request.Context(), dto); err != nil {
		if status, ok := registryStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đăng ký biển số", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plate": domain.NormalizePlate(dto.Plate)})
}

// DELETE /plates/reserved/:plate
func (h *PlateRegistryHandler) UnregisterReserved(c *gin.Context) {
	if err := h.parkingService.UnregisterReservedPlate(c.Request.Context(), c.Param("plate")); err != nil {
		if status, ok := registryStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể hủy đăng ký biển số", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /plates/reserved
func (h *PlateRegistryHandler) ListReserved(c *gin.Context) {
	plates, err := h.parkingService.ReservedPlates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách biển số", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plates)
}

// POST /plates/card-holders
func (h *PlateRegistryHandler) RegisterCardHolder(c *gin.Context) {
	var dto domain.PlateRegistrationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}
	if err := h.parkingService.RegisterCardHolder(c.Request.Context(), dto); err != nil {
		if status, ok := registryStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đăng ký biển số", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plate": domain.NormalizePlate(dto.Plate)})
}

// DELETE /plates/card-holders/:plate
func (h *PlateRegistryHandler) UnregisterCardHolder(c *gin.Context) {
	if err := h.parkingService.UnregisterCardHolder(c.Request.Context(), c.Param("plate")); err != nil {
		if status, ok := registryStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể hủy đăng ký biển số", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /plates/card-holders
func (h *PlateRegistryHandler) ListCardHolders(c *gin.Context) {
	plates, err := h.parkingService.CardHolderPlates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách biển số", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plates)
}

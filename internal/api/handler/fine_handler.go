package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

type FineHandler struct {
	parkingService *service.ParkingService
}

func NewFineHandler(ps *service.ParkingService) *FineHandler {
	return &FineHandler{parkingService: ps}
}

// POST /fines/misuse — vận hành viên ghi phạt sử dụng sai chỗ
func (h *FineHandler) IssueMisuseFine(c *gin.Context) {
	var dto domain.IssueFineDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	fine, err := h.parkingService.IssueMisuseFine(c.Request.Context(), dto)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi phạt", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, fine)
}

// GET /fines — toàn bộ khoản phạt tồn đọng
func (h *FineHandler) ListOutstandingFines(c *gin.Context) {
	fines, err := h.parkingService.AllOutstandingFines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy sổ phạt", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fines)
}

// GET /fines/:plate — khoản tồn đọng của một biển số
func (h *FineHandler) OutstandingForPlate(c *gin.Context) {
	amount, err := h.parkingService.OutstandingFines(c.Request.Context(), c.Param("plate"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tra sổ phạt", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plate": domain.NormalizePlate(c.Param("plate")), "outstanding": amount})
}

// POST /fine-schemes/activate — admin đổi biểu phạt
func (h *FineHandler) ActivateScheme(c *gin.Context) {
	var dto domain.ActivateSchemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	activation, err := h.parkingService.ActivateScheme(c.Request.Context(), dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, activation)
}

// GET /fine-schemes/history
func (h *FineHandler) SchemeHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.parkingService.SchemeHistory())
}

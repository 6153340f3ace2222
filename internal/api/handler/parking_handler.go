package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/billing"
	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/facility"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

type ParkingHandler struct {
	parkingService *service.ParkingService
}

func NewParkingHandler(ps *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: ps}
}

// ledgerStatus map lỗi nghiệp vụ sang HTTP status. Lỗi không quen trả 0.
func ledgerStatus(err error) int {
	switch {
	case errors.Is(err, facility.ErrSpotNotFound):
		return http.StatusNotFound
	case errors.Is(err, facility.ErrSpotOccupied),
		errors.Is(err, facility.ErrSessionAlreadyOpen),
		errors.Is(err, repository.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, facility.ErrIncompatibleSpot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, facility.ErrNoOpenSession), errors.Is(err, repository.ErrNoActiveSession),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, billing.ErrInvalidTimeRange):
		return http.StatusBadRequest
	default:
		return 0
	}
}

// POST /parking/check-in
func (h *ParkingHandler) VehicleCheckIn(c *gin.Context) {
	var dto domain.VehicleCheckInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	session, err := h.parkingService.CheckIn(c.Request.Context(), dto)
	if err != nil {
		if status := ledgerStatus(err); status != 0 {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể ghi nhận xe vào", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// POST /parking/check-out
func (h *ParkingHandler) VehicleCheckOut(c *gin.Context) {
	var dto domain.VehicleCheckOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	receipt, err := h.parkingService.CheckOut(c.Request.Context(), dto)
	if err != nil {
		if status := ledgerStatus(err); status != 0 {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi nhận xe ra", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GET /parking/quote?plate=...&as_of=...
func (h *ParkingHandler) Quote(c *gin.Context) {
	var dto domain.QuoteRequestDTO
	if err := c.ShouldBindQuery(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số không hợp lệ: " + err.Error()})
		return
	}

	receipt, err := h.parkingService.Quote(c.Request.Context(), dto)
	if err != nil {
		if status := ledgerStatus(err); status != 0 {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tính báo giá", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GET /parking/sessions
func (h *ParkingHandler) ListOpenSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.parkingService.OpenSessions())
}

// GET /parking/sessions/:plate
func (h *ParkingHandler) GetSessionByPlate(c *gin.Context) {
	session, err := h.parkingService.SessionForPlate(c.Param("plate"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// GET /facility/spots?floor=&class=&status=
func (h *ParkingHandler) ListSpots(c *gin.Context) {
	var filter domain.SpotFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số filter không hợp lệ: " + err.Error()})
		return
	}

	spots, err := h.parkingService.Spots(filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /facility/availability
func (h *ParkingHandler) Availability(c *gin.Context) {
	c.JSON(http.StatusOK, h.parkingService.Availability())
}

// GET /payments/:plate
func (h *ParkingHandler) PaymentsForPlate(c *gin.Context) {
	payments, err := h.parkingService.PaymentsForPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy lịch sử thanh toán", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /revenue
func (h *ParkingHandler) TotalRevenue(c *gin.Context) {
	total, err := h.parkingService.TotalRevenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tính tổng doanh thu", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_revenue": total})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

type GateHandler struct {
	gateService *service.GateService
}

func NewGateHandler(gs *service.GateService) *GateHandler {
	return &GateHandler{gateService: gs}
}

type barrierCommandDTO struct {
	Direction string `json:"direction" binding:"required"` // "entry" | "exit"
	Command   string `json:"command" binding:"required"`   // "open" | "close"
}

// POST /gate/barrier — vận hành viên mở/đóng rào chắn thủ công
func (h *GateHandler) ControlBarrier(c *gin.Context) {
	var dto barrierCommandDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	direction := domain.GateDirection(dto.Direction)
	if direction != domain.GateDirectionEntry && direction != domain.GateDirectionExit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction phải là 'entry' hoặc 'exit'"})
		return
	}

	var requestID string
	var err error
	switch dto.Command {
	case "open":
		requestID, err = h.gateService.OpenBarrier(c.Request.Context(), direction)
	case "close":
		requestID, err = h.gateService.CloseBarrier(c.Request.Context(), direction)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "command phải là 'open' hoặc 'close'"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể gửi lệnh rào chắn", "details": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"request_id": requestID})
}

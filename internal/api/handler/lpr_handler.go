package handler

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

type LPRHandler struct {
	lprService *service.LPRService
}

func NewLPRHandler(lprService *service.LPRService) *LPRHandler {
	return &LPRHandler{lprService: lprService}
}

// POST /api/v1/lpr/process-image
// Trả về biển số đã chuẩn hóa; màn hình vận hành dùng kết quả này để điền
// form check-in / check-out.
func (h *LPRHandler) ProcessImage(c *gin.Context) {
	var req domain.LPRRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ: " + err.Error()})
		return
	}

	// Giải mã ảnh base64
	imageBytes, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		log.Printf("LPRHandler: Lỗi giải mã ảnh base64: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu ảnh không hợp lệ"})
		return
	}

	if len(imageBytes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu ảnh rỗng"})
		return
	}
	log.Printf("LPRHandler: Đã nhận %d bytes ảnh để xử lý LPR.", len(imageBytes))

	detectedPlate, confidence, err := h.lprService.ProcessImageForLPR(c.Request.Context(), imageBytes)
	if err != nil {
		log.Printf("LPRHandler: Lỗi từ LPRService: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi xử lý ảnh LPR", "details": err.Error()})
		return
	}

	if detectedPlate == "" {
		c.JSON(http.StatusOK, domain.LPRResponseDTO{
			DetectedPlate: "",
			ErrorMessage:  "Không nhận dạng được biển số.",
		})
		return
	}

	c.JSON(http.StatusOK, domain.LPRResponseDTO{
		DetectedPlate: detectedPlate,
		Confidence:    confidence,
	})
}

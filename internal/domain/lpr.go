package domain

// LPRRequestDTO dùng khi màn hình vận hành gửi ảnh chụp biển số lên.
type LPRRequestDTO struct {
	// Ảnh dưới dạng base64 encoded string
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// LPRResponseDTO trả về biển số đã nhận dạng, đã chuẩn hóa qua NormalizePlate.
type LPRResponseDTO struct {
	DetectedPlate string  `json:"detected_plate"`
	Confidence    float32 `json:"confidence,omitempty"` // Độ tin cậy (nếu có)
	ErrorMessage  string  `json:"error_message,omitempty"`
}

package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

type LPRService struct {
	rekognitionClient *rekognition.Client
}

func NewLPRService(rekClient *rekognition.Client) *LPRService {
	return &LPRService{rekognitionClient: rekClient}
}

// Regex cơ bản cho biển số Việt Nam. Ví dụ: 29A-123.45, 51G-12345.
// Cần tinh chỉnh thêm để giảm false positives.
var plateRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{1,2}[- ]?[0-9]{3,5}(\.[0-9]{2})?$`)

// ProcessImageForLPR nhận ảnh dưới dạng bytes, gọi Rekognition DetectText
// và trích xuất biển số có độ tin cậy cao nhất. Biển số trả về đã qua
// NormalizePlate nên dùng thẳng được cho check-in/check-out.
func (s *LPRService) ProcessImageForLPR(ctx context.Context, imageBytes []byte) (string, float32, error) {
	if s.rekognitionClient == nil {
		return "", 0, fmt.Errorf("Rekognition client chưa được khởi tạo")
	}

	input := &rekognition.DetectTextInput{
		Image: &types.Image{
			Bytes: imageBytes,
		},
	}

	log.Println("LPRService: Đang gọi Rekognition DetectText...")
	result, err := s.rekognitionClient.DetectText(ctx, input)
	if err != nil {
		log.Printf("LPRService: Lỗi khi gọi Rekognition DetectText: %v", err)
		return "", 0, fmt.Errorf("lỗi Rekognition: %w", err)
	}

	log.Printf("LPRService: Rekognition trả về %d khối văn bản.", len(result.TextDetections))
	var detectedTexts []string
	var bestPlate string
	var maxConfidence float32 = 0.0

	for _, textDetection := range result.TextDetections {
		if textDetection.Type != types.TextTypesLine && textDetection.Type != types.TextTypesWord {
			continue
		}
		if textDetection.DetectedText == nil || textDetection.Confidence == nil {
			continue
		}
		txt := domain.NormalizePlate(*textDetection.DetectedText)
		txt = strings.ReplaceAll(txt, ".", "") // bỏ dấu chấm cho regex đơn giản hơn

		detectedTexts = append(detectedTexts, fmt.Sprintf("%s (%.2f)", txt, *textDetection.Confidence))

		if plateRegex.MatchString(txt) && *textDetection.Confidence > maxConfidence {
			maxConfidence = *textDetection.Confidence
			bestPlate = domain.NormalizePlate(*textDetection.DetectedText)
		}
	}

	if bestPlate != "" {
		log.Printf("LPRService: Biển số được chọn: '%s' với độ tin cậy: %.2f", bestPlate, maxConfidence)
		return bestPlate, maxConfidence, nil
	}

	log.Println("LPRService: Không tìm thấy biển số nào khớp regex từ văn bản nhận dạng.")
	return "", 0, fmt.Errorf("không nhận dạng được biển số từ ảnh (Văn bản: %s)", strings.Join(detectedTexts, ", "))
}

package billing

import "fmt"

// FineScheme tính tiền phạt quá hạn từ số giờ tính phí của phiên đỗ.
// 24 giờ đầu luôn được miễn phạt ở mọi biểu.
type FineScheme interface {
	Name() string
	Fine(hoursCharged int64) float64
}

const (
	SchemeFixed       = "fixed"
	SchemeHourly      = "hourly"
	SchemeProgressive = "progressive"

	// DefaultSchemeName áp dụng khi chưa có mốc kích hoạt nào trong lịch sử.
	DefaultSchemeName = SchemeFixed
)

type fixedScheme struct{}

func (fixedScheme) Name() string { return SchemeFixed }

// Quá 24 giờ nộp phạt một cục 50, bất kể quá bao lâu.
func (fixedScheme) Fine(hours int64) float64 {
	if hours > 24 {
		return 50
	}
	return 0
}

type hourlyScheme struct{}

func (hourlyScheme) Name() string { return SchemeHourly }

// Mỗi giờ quá hạn sau mốc 24 giờ chịu 20.
func (hourlyScheme) Fine(hours int64) float64 {
	if hours > 24 {
		return float64(hours-24) * 20
	}
	return 0
}

type progressiveScheme struct{}

func (progressiveScheme) Name() string { return SchemeProgressive }

// Phạt bậc thang cộng dồn theo ngưỡng: +50 khi quá 24 giờ, +100 khi quá
// 48 giờ, +150 khi quá 72 giờ. Tối đa 300.
func (progressiveScheme) Fine(hours int64) float64 {
	var fine float64
	if hours > 24 {
		fine += 50
	}
	if hours > 48 {
		fine += 100
	}
	if hours > 72 {
		fine += 150
	}
	return fine
}

// SchemeByName tra biểu phạt theo tên. Tên không hợp lệ là lỗi, không rơi
// về biểu mặc định.
func SchemeByName(name string) (FineScheme, error) {
	switch name {
	case SchemeFixed:
		return fixedScheme{}, nil
	case SchemeHourly:
		return hourlyScheme{}, nil
	case SchemeProgressive:
		return progressiveScheme{}, nil
	default:
		return nil, fmt.Errorf("biểu phạt không hợp lệ: %q", name)
	}
}

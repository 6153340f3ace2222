package billing

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("thời gian ra phải sau thời gian vào")

// HoursCharged quy đổi khoảng đỗ sang số giờ tính phí: làm tròn lên theo
// giờ, tối thiểu 1 giờ. Ra trước hoặc đúng lúc vào là lỗi, không phải 0 giờ.
func HoursCharged(entry, exit time.Time) (int64, error) {
	if !exit.After(entry) {
		return 0, ErrInvalidTimeRange
	}
	minutes := int64(exit.Sub(entry) / time.Minute)
	hours := (minutes + 59) / 60
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

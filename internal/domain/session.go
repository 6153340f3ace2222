package domain

import (
	"time"
)

// ParkingSession là một phiên đỗ xe đang mở. Bất biến sau khi tạo: kết thúc
// phiên là xóa bản ghi (qua thanh toán), không phải sửa nó. Mỗi biển số có
// tối đa một phiên mở tại một thời điểm.
type ParkingSession struct {
	Plate        string       `json:"plate"` // đã chuẩn hóa
	VehicleClass VehicleClass `json:"vehicle_class"`
	SpotID       SpotID       `json:"spot_id"`
	SpotClass    SpotClass    `json:"spot_class"`
	EntryTime    time.Time    `json:"entry_time"`
}

type VehicleCheckInDTO struct {
	Plate        string `json:"plate" binding:"required"`
	VehicleClass string `json:"vehicle_class" binding:"required"`
	SpotID       string `json:"spot_id" binding:"required"`
	EntryTime    string `json:"entry_time,omitempty"` // RFC3339, mặc định là thời gian server
}

type VehicleCheckOutDTO struct {
	Plate         string `json:"plate" binding:"required"`
	ExitTime      string `json:"exit_time,omitempty"` // RFC3339, mặc định là thời gian server
	PaymentMethod string `json:"payment_method,omitempty"`
	// FeeOnly = true: chỉ trả tiền đỗ, khoản phạt chưa trả giữ nguyên trong
	// sổ phạt để thu sau (thanh toán một phần).
	FeeOnly bool `json:"fee_only,omitempty"`
}

type QuoteRequestDTO struct {
	Plate string `json:"plate" form:"plate" binding:"required"`
	AsOf  string `json:"as_of,omitempty" form:"as_of"` // RFC3339, mặc định là thời gian server
}

type SpotFilterDTO struct {
	Floor  string `form:"floor"`
	Class  string `form:"class"`
	Status string `form:"status"` // "available" | "occupied" | rỗng = tất cả
}

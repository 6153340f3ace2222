package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// Receipt là kết quả tất toán một phiên đỗ. Tổng = phí đỗ + khoản phạt
// trong lần thanh toán này; phần phạt không thu (thanh toán một phần)
// nằm ở OutstandingAfter.
type Receipt struct {
	ReceiptID    string       `json:"receipt_id"`
	Plate        string       `json:"plate"`
	VehicleClass VehicleClass `json:"vehicle_class"`
	SpotID       string       `json:"spot_id"`
	SpotClass    SpotClass    `json:"spot_class"`
	EntryTime    time.Time    `json:"entry_time"`
	ExitTime     time.Time    `json:"exit_time"`
	HoursCharged int64        `json:"hours_charged"`
	HourlyRate   float64      `json:"hourly_rate"`
	ParkingFee   float64      `json:"parking_fee"`
	FineScheme   string       `json:"fine_scheme"`
	OverstayFine float64      `json:"overstay_fine"`
	// PriorFines là khoản phạt tồn đọng trước phiên này (phạt sử dụng sai
	// chỗ, phiên trước chỉ trả một phần...).
	PriorFines       float64 `json:"prior_fines"`
	Fine             float64 `json:"fine"`
	Total            float64 `json:"total"`
	PaidAmount       float64 `json:"paid_amount"`
	OutstandingAfter float64 `json:"outstanding_after"`
	FeeOnly          bool    `json:"fee_only"`
}

// PaymentRecord là một lần thu tiền đã ghi sổ.
type PaymentRecord struct {
	ID          string      `json:"id"` // uuid
	Plate       string      `json:"plate"`
	ParkingFee  float64     `json:"parking_fee"`
	FineAmount  float64     `json:"fine_amount"`
	Total       float64     `json:"total"`
	Method      null.String `json:"method"`
	SpotID      null.String `json:"spot_id"`
	PaymentTime time.Time   `json:"payment_time"`
}

// FineSchemeActivation là một mốc kích hoạt biểu phạt. Lịch sử chỉ ghi
// thêm, không sửa; biểu áp dụng cho một phiên là biểu mới nhất có
// ActivatedAt <= thời điểm xe vào.
type FineSchemeActivation struct {
	ID          int64     `json:"id"`
	SchemeName  string    `json:"scheme_name"`
	ActivatedAt time.Time `json:"activated_at"`
}

// UnpaidFine là khoản phạt tồn đọng theo biển số, cộng dồn khi phát sinh
// thêm và trừ dần khi thu.
type UnpaidFine struct {
	Plate     string    `json:"plate"`
	Amount    float64   `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

type IssueFineDTO struct {
	Plate  string `json:"plate" binding:"required"`
	Reason string `json:"reason,omitempty"`
}

type ActivateSchemeDTO struct {
	Scheme string `json:"scheme" binding:"required"` // fixed | hourly | progressive
}

type PlateRegistrationDTO struct {
	Plate string `json:"plate" binding:"required"`
}

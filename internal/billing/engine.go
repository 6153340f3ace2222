package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

// MisusePenalty là mức phạt cố định khi vận hành viên ghi nhận xe dùng sai
// chỗ (đỗ chỗ handicapped không có thẻ, chiếm chỗ reserved...).
const MisusePenalty = 100.0

// CardHolderRate là đơn giá ưu đãi đồng hạng cho chủ thẻ OKU.
const CardHolderRate = 2.0

// Engine tất toán phiên đỗ: tra đơn giá, tính phí theo giờ, tra biểu phạt
// theo thời điểm vào và gộp khoản phạt tồn đọng.
type Engine struct {
	timeline *Timeline
	// cardFineDiscount: trừ 2.0 vào tiền phạt quá hạn cho chủ thẻ (không
	// âm). Tắt mặc định.
	cardFineDiscount bool
}

func NewEngine(timeline *Timeline, cardFineDiscount bool) *Engine {
	return &Engine{timeline: timeline, cardFineDiscount: cardFineDiscount}
}

// HourlyRate tra đơn giá theo thứ tự ưu tiên: miễn phí cho xe người khuyết
// tật có thẻ đỗ đúng chỗ handicapped; đơn giá ưu đãi đồng hạng cho chủ thẻ;
// còn lại theo đơn giá cơ bản của loại chỗ.
func (e *Engine) HourlyRate(vehicle domain.VehicleClass, spot domain.SpotClass, cardHolder bool) float64 {
	if cardHolder && vehicle == domain.VehicleHandicapped && spot == domain.SpotHandicapped {
		return 0
	}
	if cardHolder {
		return CardHolderRate
	}
	return spot.BaseHourlyRate()
}

// Settle tất toán phiên tại exitTime. priorFines là khoản phạt tồn đọng của
// biển số trước phiên này. feeOnly = true nghĩa là chỉ thu phí đỗ, mọi
// khoản phạt (quá hạn + tồn đọng) ghi lại vào sổ phạt thay vì thu ngay.
func (e *Engine) Settle(session domain.ParkingSession, exitTime time.Time, cardHolder bool, priorFines float64, feeOnly bool) (domain.Receipt, error) {
	hours, err := HoursCharged(session.EntryTime, exitTime)
	if err != nil {
		return domain.Receipt{}, err
	}

	rate := e.HourlyRate(session.VehicleClass, session.SpotClass, cardHolder)
	parkingFee := rate * float64(hours)

	scheme := e.timeline.SchemeAt(session.EntryTime)
	overstay := scheme.Fine(hours)
	if e.cardFineDiscount && cardHolder && overstay > 0 {
		overstay -= 2.0
		if overstay < 0 {
			overstay = 0
		}
	}

	fine := overstay + priorFines
	receipt := domain.Receipt{
		ReceiptID:    uuid.NewString(),
		Plate:        session.Plate,
		VehicleClass: session.VehicleClass,
		SpotID:       session.SpotID.String(),
		SpotClass:    session.SpotClass,
		EntryTime:    session.EntryTime,
		ExitTime:     exitTime.UTC(),
		HoursCharged: hours,
		HourlyRate:   rate,
		ParkingFee:   parkingFee,
		FineScheme:   scheme.Name(),
		OverstayFine: overstay,
		PriorFines:   priorFines,
		Fine:         fine,
		Total:        parkingFee + fine,
		FeeOnly:      feeOnly,
	}
	if feeOnly {
		receipt.PaidAmount = parkingFee
		receipt.OutstandingAfter = fine
	} else {
		receipt.PaidAmount = receipt.Total
		receipt.OutstandingAfter = 0
	}
	return receipt, nil
}

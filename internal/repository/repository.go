package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi")
var ErrDuplicateEntry = errors.New("bản ghi đã tồn tại")
var ErrNoActiveSession = errors.New("không tìm thấy phiên đỗ xe đang hoạt động cho thông tin cung cấp")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// SessionRepository lưu các phiên đỗ đang mở để khôi phục ledger khi
// restart. Khóa là biển số đã chuẩn hóa.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) error
	FindByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error)
	FindAllOpen(ctx context.Context) ([]domain.ParkingSession, error)
	Delete(ctx context.Context, plate string) error
}

// FineSchemeHistoryRepository là lịch sử kích hoạt biểu phạt, chỉ ghi thêm.
type FineSchemeHistoryRepository interface {
	Append(ctx context.Context, activation *domain.FineSchemeActivation) (*domain.FineSchemeActivation, error)
	// FindAll trả lịch sử theo thứ tự ghi: activated_at tăng dần, cùng mốc
	// thì theo id.
	FindAll(ctx context.Context) ([]domain.FineSchemeActivation, error)
	FindActiveAt(ctx context.Context, at time.Time) (*domain.FineSchemeActivation, error)
}

// UnpaidFineRepository là sổ phạt tồn đọng theo biển số: cộng dồn khi phát
// sinh, trừ dần khi thu, xóa bản ghi khi về 0.
type UnpaidFineRepository interface {
	AddFine(ctx context.Context, plate string, amount float64) (*domain.UnpaidFine, error)
	OutstandingFor(ctx context.Context, plate string) (float64, error)
	// SettleFine trừ số tiền đã thu; về 0 thì xóa bản ghi.
	SettleFine(ctx context.Context, plate string, amount float64) error
	FindAll(ctx context.Context) ([]domain.UnpaidFine, error)
}

// PlateRegistryRepository quản lý hai danh sách biển số: biển số được phép
// dùng chỗ reserved và biển số chủ thẻ OKU.
type PlateRegistryRepository interface {
	RegisterReserved(ctx context.Context, plate string) error
	UnregisterReserved(ctx context.Context, plate string) error
	IsReserved(ctx context.Context, plate string) (bool, error)
	ListReserved(ctx context.Context) ([]string, error)

	RegisterCardHolder(ctx context.Context, plate string) error
	UnregisterCardHolder(ctx context.Context, plate string) error
	IsCardHolder(ctx context.Context, plate string) (bool, error)
	ListCardHolders(ctx context.Context) ([]string, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) error
	FindByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

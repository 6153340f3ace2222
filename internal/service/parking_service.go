package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/sfwannn/AssingentOOAD/internal/billing"
	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/facility"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

// OccupancyNotifier đẩy thông báo trạng thái chỗ đỗ tới các client
// WebSocket. Triển khai thật nằm ở tầng api/handler.
type OccupancyNotifier interface {
	BroadcastJSON(v interface{})
}

type noopNotifier struct{}

func (noopNotifier) BroadcastJSON(v interface{}) {}

// ParkingService điều phối nghiệp vụ nhận xe / trả xe: ledger giữ trạng
// thái chiếm chỗ, engine tính tiền, các repository lưu bền phiên mở,
// thanh toán, sổ phạt và danh sách biển số đăng ký.
type ParkingService struct {
	catalog      *facility.Facility
	ledger       *facility.Ledger
	engine       *billing.Engine
	timeline     *billing.Timeline
	sessionRepo  repository.SessionRepository
	paymentRepo  repository.PaymentRepository
	fineRepo     repository.UnpaidFineRepository
	schemeRepo   repository.FineSchemeHistoryRepository
	registryRepo repository.PlateRegistryRepository
	notifier     OccupancyNotifier
}

func NewParkingService(
	catalog *facility.Facility,
	ledger *facility.Ledger,
	engine *billing.Engine,
	timeline *billing.Timeline,
	sessionRepo repository.SessionRepository,
	paymentRepo repository.PaymentRepository,
	fineRepo repository.UnpaidFineRepository,
	schemeRepo repository.FineSchemeHistoryRepository,
	registryRepo repository.PlateRegistryRepository,
) *ParkingService {
	return &ParkingService{
		catalog:      catalog,
		ledger:       ledger,
		engine:       engine,
		timeline:     timeline,
		sessionRepo:  sessionRepo,
		paymentRepo:  paymentRepo,
		fineRepo:     fineRepo,
		schemeRepo:   schemeRepo,
		registryRepo: registryRepo,
		notifier:     noopNotifier{},
	}
}

// SetNotifier gắn WebSocket manager sau khi dựng xong router. Gọi trước
// khi server nhận request.
func (s *ParkingService) SetNotifier(n OccupancyNotifier) {
	if n != nil {
		s.notifier = n
	}
}

// Restore nạp lại ledger và timeline từ storage khi khởi động.
func (s *ParkingService) Restore(ctx context.Context) error {
	sessions, err := s.sessionRepo.FindAllOpen(ctx)
	if err != nil {
		return fmt.Errorf("lỗi nạp lại phiên đỗ từ database: %w", err)
	}
	skipped := s.ledger.Restore(sessions)
	for _, sess := range skipped {
		log.Printf("Cảnh báo: bỏ qua phiên đỗ không hợp lệ khi khôi phục: biển số %s, chỗ %s", sess.Plate, sess.SpotID.String())
	}

	history, err := s.schemeRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("lỗi nạp lịch sử biểu phạt từ database: %w", err)
	}
	s.timeline.Load(history)
	log.Printf("Khôi phục trạng thái: %d phiên đỗ mở, %d mốc biểu phạt", len(sessions)-len(skipped), len(history))
	return nil
}

// --- Nhận xe / trả xe ---

// CheckIn nhận xe vào chỗ chỉ định và mở phiên đỗ.
func (s *ParkingService) CheckIn(ctx context.Context, dto domain.VehicleCheckInDTO) (*domain.ParkingSession, error) {
	plate := domain.NormalizePlate(dto.Plate)
	if plate == "" {
		return nil, fmt.Errorf("biển số không được để trống")
	}
	vehicle, err := domain.ParseVehicleClass(dto.VehicleClass)
	if err != nil {
		return nil, err
	}
	spotID, err := domain.ParseSpotID(dto.SpotID)
	if err != nil {
		return nil, err
	}
	entryTime, err := parseTimeOrNow(dto.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("thời gian vào không hợp lệ: %w", err)
	}

	elevated, err := s.registryRepo.IsReserved(ctx, plate)
	if err != nil {
		return nil, err
	}

	session, err := s.ledger.Park(plate, vehicle, spotID, elevated, entryTime)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		// rollback ledger để trạng thái runtime khớp storage
		if _, rbErr := s.ledger.Release(plate); rbErr != nil {
			log.Printf("Lỗi rollback ledger sau khi ghi phiên thất bại: %v", rbErr)
		}
		return nil, err
	}

	log.Printf("Nhận xe: biển số %s (%s) vào chỗ %s lúc %s", plate, vehicle, session.SpotID.String(), session.EntryTime.Format(time.RFC3339))
	s.notifier.BroadcastJSON(domain.OccupancyNotification{
		Type:      "spot_parked",
		SpotID:    session.SpotID.String(),
		SpotClass: session.SpotClass,
		Floor:     session.SpotID.Floor,
		Plate:     plate,
		Timestamp: time.Now().UTC(),
	})
	return &session, nil
}

// CheckOut tất toán và đóng phiên đỗ của biển số. FeeOnly = true thì chỉ
// thu phí đỗ, khoản phạt ghi vào sổ tồn đọng.
func (s *ParkingService) CheckOut(ctx context.Context, dto domain.VehicleCheckOutDTO) (*domain.Receipt, error) {
	plate := domain.NormalizePlate(dto.Plate)
	session, ok := s.ledger.SessionFor(plate)
	if !ok {
		return nil, facility.ErrNoOpenSession
	}
	exitTime, err := parseTimeOrNow(dto.ExitTime)
	if err != nil {
		return nil, fmt.Errorf("thời gian ra không hợp lệ: %w", err)
	}

	receipt, err := s.settle(ctx, session, exitTime, dto.FeeOnly)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.Release(plate); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Delete(ctx, plate); err != nil {
		log.Printf("Lỗi xóa phiên đỗ khỏi database (biển số %s): %v", plate, err)
	}

	// ghi sổ: thu đủ thì xóa nợ cũ; chỉ thu phí thì cộng khoản phạt mới vào nợ
	if dto.FeeOnly {
		if receipt.OverstayFine > 0 {
			if _, err := s.fineRepo.AddFine(ctx, plate, receipt.OverstayFine); err != nil {
				log.Printf("Lỗi ghi khoản phạt tồn đọng (biển số %s): %v", plate, err)
			}
		}
	} else if receipt.PriorFines > 0 {
		if err := s.fineRepo.SettleFine(ctx, plate, receipt.PriorFines); err != nil {
			log.Printf("Lỗi tất toán khoản phạt tồn đọng (biển số %s): %v", plate, err)
		}
	}

	payment := &domain.PaymentRecord{
		ID:          receipt.ReceiptID,
		Plate:       plate,
		ParkingFee:  receipt.ParkingFee,
		FineAmount:  receipt.PaidAmount - receipt.ParkingFee,
		Total:       receipt.PaidAmount,
		Method:      nullString(dto.PaymentMethod),
		SpotID:      null.StringFrom(receipt.SpotID),
		PaymentTime: receipt.ExitTime,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		log.Printf("Lỗi ghi thanh toán (biển số %s): %v", plate, err)
	}

	log.Printf("Trả xe: biển số %s rời chỗ %s, %d giờ, tổng %.2f (đã thu %.2f)",
		plate, receipt.SpotID, receipt.HoursCharged, receipt.Total, receipt.PaidAmount)
	s.notifier.BroadcastJSON(domain.OccupancyNotification{
		Type:      "spot_released",
		SpotID:    receipt.SpotID,
		SpotClass: receipt.SpotClass,
		Floor:     session.SpotID.Floor,
		Timestamp: time.Now().UTC(),
	})
	return receipt, nil
}

// Quote tính trước hóa đơn tại thời điểm as_of mà không đóng phiên.
func (s *ParkingService) Quote(ctx context.Context, dto domain.QuoteRequestDTO) (*domain.Receipt, error) {
	plate := domain.NormalizePlate(dto.Plate)
	session, ok := s.ledger.SessionFor(plate)
	if !ok {
		return nil, facility.ErrNoOpenSession
	}
	asOf, err := parseTimeOrNow(dto.AsOf)
	if err != nil {
		return nil, fmt.Errorf("thời gian báo giá không hợp lệ: %w", err)
	}
	return s.settle(ctx, session, asOf, false)
}

func (s *ParkingService) settle(ctx context.Context, session domain.ParkingSession, exitTime time.Time, feeOnly bool) (*domain.Receipt, error) {
	cardHolder, err := s.registryRepo.IsCardHolder(ctx, session.Plate)
	if err != nil {
		return nil, err
	}
	priorFines, err := s.fineRepo.OutstandingFor(ctx, session.Plate)
	if err != nil {
		return nil, err
	}
	receipt, err := s.engine.Settle(session, exitTime, cardHolder, priorFines, feeOnly)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// --- Tra cứu chỗ đỗ / phiên ---

func (s *ParkingService) Spots(filter domain.SpotFilterDTO) ([]domain.Spot, error) {
	spots := s.ledger.Snapshot()
	if filter.Floor == "" && filter.Class == "" && filter.Status == "" {
		return spots, nil
	}

	var classFilter domain.SpotClass
	if filter.Class != "" {
		c, err := domain.ParseSpotClass(filter.Class)
		if err != nil {
			return nil, err
		}
		classFilter = c
	}
	var out []domain.Spot
	for _, spot := range spots {
		if filter.Floor != "" && fmt.Sprintf("%d", spot.ID.Floor) != filter.Floor {
			continue
		}
		if classFilter != "" && spot.Class != classFilter {
			continue
		}
		if filter.Status == "available" && spot.Occupied {
			continue
		}
		if filter.Status == "occupied" && !spot.Occupied {
			continue
		}
		out = append(out, spot)
	}
	return out, nil
}

func (s *ParkingService) Availability() map[domain.SpotClass]int {
	return s.ledger.AvailableByClass()
}

func (s *ParkingService) OpenSessions() []domain.ParkingSession {
	return s.ledger.OpenSessions()
}

func (s *ParkingService) SessionForPlate(plate string) (*domain.ParkingSession, error) {
	session, ok := s.ledger.SessionFor(domain.NormalizePlate(plate))
	if !ok {
		return nil, facility.ErrNoOpenSession
	}
	return &session, nil
}

// --- Phạt ---

// IssueMisuseFine ghi khoản phạt sử dụng sai chỗ vào sổ tồn đọng của biển số.
func (s *ParkingService) IssueMisuseFine(ctx context.Context, dto domain.IssueFineDTO) (*domain.UnpaidFine, error) {
	plate := domain.NormalizePlate(dto.Plate)
	if plate == "" {
		return nil, fmt.Errorf("biển số không được để trống")
	}
	fine, err := s.fineRepo.AddFine(ctx, plate, billing.MisusePenalty)
	if err != nil {
		return nil, err
	}
	log.Printf("Ghi phạt sử dụng sai chỗ: biển số %s, mức %.2f, lý do: %s", plate, billing.MisusePenalty, dto.Reason)
	return fine, nil
}

func (s *ParkingService) OutstandingFines(ctx context.Context, plate string) (float64, error) {
	return s.fineRepo.OutstandingFor(ctx, domain.NormalizePlate(plate))
}

func (s *ParkingService) AllOutstandingFines(ctx context.Context) ([]domain.UnpaidFine, error) {
	return s.fineRepo.FindAll(ctx)
}

// --- Biểu phạt ---

// ActivateScheme ghi mốc kích hoạt biểu phạt mới, hiệu lực từ thời điểm gọi.
func (s *ParkingService) ActivateScheme(ctx context.Context, dto domain.ActivateSchemeDTO) (*domain.FineSchemeActivation, error) {
	if _, err := billing.SchemeByName(dto.Scheme); err != nil {
		return nil, err
	}
	activation := &domain.FineSchemeActivation{
		SchemeName:  dto.Scheme,
		ActivatedAt: time.Now().UTC(),
	}
	activation, err := s.schemeRepo.Append(ctx, activation)
	if err != nil {
		return nil, err
	}
	s.timeline.AppendEntry(*activation)
	log.Printf("Kích hoạt biểu phạt %q từ %s", activation.SchemeName, activation.ActivatedAt.Format(time.RFC3339))
	return activation, nil
}

func (s *ParkingService) SchemeHistory() []domain.FineSchemeActivation {
	return s.timeline.History()
}

// --- Danh sách biển số đăng ký ---

func (s *ParkingService) RegisterReservedPlate(ctx context.Context, dto domain.PlateRegistrationDTO) error {
	return s.registryRepo.RegisterReserved(ctx, domain.NormalizePlate(dto.Plate))
}

func (s *ParkingService) UnregisterReservedPlate(ctx context.Context, plate string) error {
	return s.registryRepo.UnregisterReserved(ctx, domain.NormalizePlate(plate))
}

func (s *ParkingService) ReservedPlates(ctx context.Context) ([]string, error) {
	return s.registryRepo.ListReserved(ctx)
}

func (s *ParkingService) RegisterCardHolder(ctx context.Context, dto domain.PlateRegistrationDTO) error {
	return s.registryRepo.RegisterCardHolder(ctx, domain.NormalizePlate(dto.Plate))
}

func (s *ParkingService) UnregisterCardHolder(ctx context.Context, plate string) error {
	return s.registryRepo.UnregisterCardHolder(ctx, domain.NormalizePlate(plate))
}

func (s *ParkingService) CardHolderPlates(ctx context.Context) ([]string, error) {
	return s.registryRepo.ListCardHolders(ctx)
}

// --- Thanh toán ---

func (s *ParkingService) PaymentsForPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error) {
	return s.paymentRepo.FindByPlate(ctx, domain.NormalizePlate(plate))
}

// TotalRevenue là tổng doanh thu đã thu qua mọi thanh toán.
func (s *ParkingService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.paymentRepo.TotalRevenue(ctx)
}

func parseTimeOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfwannn/AssingentOOAD/internal/billing"
	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/facility"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

// --- fake repositories trong bộ nhớ ---

type fakeSessionRepo struct {
	sessions map[string]domain.ParkingSession
	failNext bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.ParkingSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *domain.ParkingSession) error {
	if r.failNext {
		r.failNext = false
		return assert.AnError
	}
	if _, ok := r.sessions[session.Plate]; ok {
		return repository.ErrDuplicateEntry
	}
	r.sessions[session.Plate] = *session
	return nil
}

func (r *fakeSessionRepo) FindByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error) {
	s, ok := r.sessions[plate]
	if !ok {
		return nil, repository.ErrNoActiveSession
	}
	return &s, nil
}

func (r *fakeSessionRepo) FindAllOpen(ctx context.Context) ([]domain.ParkingSession, error) {
	var out []domain.ParkingSession
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, plate string) error {
	if _, ok := r.sessions[plate]; !ok {
		return repository.ErrNoActiveSession
	}
	delete(r.sessions, plate)
	return nil
}

type fakePaymentRepo struct {
	payments []domain.PaymentRecord
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) FindByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error) {
	var out []domain.PaymentRecord
	for _, p := range r.payments {
		if p.Plate == plate {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeFineRepo struct {
	fines map[string]float64
}

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{fines: make(map[string]float64)}
}

func (r *fakeFineRepo) AddFine(ctx context.Context, plate string, amount float64) (*domain.UnpaidFine, error) {
	r.fines[plate] += amount
	return &domain.UnpaidFine{Plate: plate, Amount: r.fines[plate], UpdatedAt: time.Now().UTC()}, nil
}

func (r *fakeFineRepo) OutstandingFor(ctx context.Context, plate string) (float64, error) {
	return r.fines[plate], nil
}

func (r *fakeFineRepo) SettleFine(ctx context.Context, plate string, amount float64) error {
	if _, ok := r.fines[plate]; !ok {
		return repository.ErrNotFound
	}
	r.fines[plate] -= amount
	if r.fines[plate] <= 0 {
		delete(r.fines, plate)
	}
	return nil
}

func (r *fakeFineRepo) FindAll(ctx context.Context) ([]domain.UnpaidFine, error) {
	var out []domain.UnpaidFine
	for plate, amount := range r.fines {
		out = append(out, domain.UnpaidFine{Plate: plate, Amount: amount})
	}
	return out, nil
}

type fakeSchemeRepo struct {
	entries []domain.FineSchemeActivation
}

func (r *fakeSchemeRepo) Append(ctx context.Context, activation *domain.FineSchemeActivation) (*domain.FineSchemeActivation, error) {
	activation.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *activation)
	return activation, nil
}

func (r *fakeSchemeRepo) FindAll(ctx context.Context) ([]domain.FineSchemeActivation, error) {
	return append([]domain.FineSchemeActivation(nil), r.entries...), nil
}

func (r *fakeSchemeRepo) FindActiveAt(ctx context.Context, at time.Time) (*domain.FineSchemeActivation, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if !r.entries[i].ActivatedAt.After(at) {
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeRegistryRepo struct {
	reserved    map[string]bool
	cardHolders map[string]bool
}

func newFakeRegistryRepo() *fakeRegistryRepo {
	return &fakeRegistryRepo{reserved: make(map[string]bool), cardHolders: make(map[string]bool)}
}

func (r *fakeRegistryRepo) RegisterReserved(ctx context.Context, plate string) error {
	if r.reserved[plate] {
		return repository.ErrDuplicateEntry
	}
	r.reserved[plate] = true
	return nil
}

func (r *fakeRegistryRepo) UnregisterReserved(ctx context.Context, plate string) error {
	if !r.reserved[plate] {
		return repository.ErrNotFound
	}
	delete(r.reserved, plate)
	return nil
}

func (r *fakeRegistryRepo) IsReserved(ctx context.Context, plate string) (bool, error) {
	return r.reserved[plate], nil
}

func (r *fakeRegistryRepo) ListReserved(ctx context.Context) ([]string, error) {
	var out []string
	for p := range r.reserved {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRegistryRepo) RegisterCardHolder(ctx context.Context, plate string) error {
	if r.cardHolders[plate] {
		return repository.ErrDuplicateEntry
	}
	r.cardHolders[plate] = true
	return nil
}

func (r *fakeRegistryRepo) UnregisterCardHolder(ctx context.Context, plate string) error {
	if !r.cardHolders[plate] {
		return repository.ErrNotFound
	}
	delete(r.cardHolders, plate)
	return nil
}

func (r *fakeRegistryRepo) IsCardHolder(ctx context.Context, plate string) (bool, error) {
	return r.cardHolders[plate], nil
}

func (r *fakeRegistryRepo) ListCardHolders(ctx context.Context) ([]string, error) {
	var out []string
	for p := range r.cardHolders {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePaymentRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	for _, p := range r.payments {
		total += p.Total
	}
	return total, nil
}

// --- helpers ---

type testEnv struct {
	svc         *ParkingService
	sessionRepo *fakeSessionRepo
	paymentRepo *fakePaymentRepo
	fineRepo    *fakeFineRepo
	schemeRepo  *fakeSchemeRepo
	registry    *fakeRegistryRepo
	timeline    *billing.Timeline
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog, err := facility.NewFacility("test", facility.DefaultLayout())
	require.NoError(t, err)
	ledger := facility.NewLedger(catalog)
	timeline := billing.NewTimeline()
	engine := billing.NewEngine(timeline, false)

	env := &testEnv{
		sessionRepo: newFakeSessionRepo(),
		paymentRepo: &fakePaymentRepo{},
		fineRepo:    newFakeFineRepo(),
		schemeRepo:  &fakeSchemeRepo{},
		registry:    newFakeRegistryRepo(),
		timeline:    timeline,
	}
	env.svc = NewParkingService(catalog, ledger, engine, timeline,
		env.sessionRepo, env.paymentRepo, env.fineRepo, env.schemeRepo, env.registry)
	return env
}

func entryTimeAgo(hours int) string {
	return time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339)
}

// --- tests ---

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("chuẩn hóa biển số và mã chỗ", func(t *testing.T) {
		env := newTestEnv(t)
		session, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate:        " ab c 123 ",
			VehicleClass: "Car",
			SpotID:       "F1-Regular-R3S21", // định dạng UI cũ
		})
		require.NoError(t, err)
		assert.Equal(t, "ABC123", session.Plate)
		assert.Equal(t, "F1-R3-S21", session.SpotID.String())
		assert.Equal(t, domain.SpotRegular, session.SpotClass)

		// đã lưu bền
		_, err = env.sessionRepo.FindByPlate(ctx, "ABC123")
		assert.NoError(t, err)
	})

	t.Run("chỗ reserved cần biển số đăng ký", func(t *testing.T) {
		env := newTestEnv(t)
		dto := domain.VehicleCheckInDTO{Plate: "VIP001", VehicleClass: "car", SpotID: "F1-R1-S01"}
		_, err := env.svc.CheckIn(ctx, dto)
		assert.ErrorIs(t, err, facility.ErrIncompatibleSpot)

		require.NoError(t, env.svc.RegisterReservedPlate(ctx, domain.PlateRegistrationDTO{Plate: "VIP001"}))
		_, err = env.svc.CheckIn(ctx, dto)
		assert.NoError(t, err)
	})

	t.Run("lưu phiên thất bại thì rollback ledger", func(t *testing.T) {
		env := newTestEnv(t)
		env.sessionRepo.failNext = true
		dto := domain.VehicleCheckInDTO{Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21"}
		_, err := env.svc.CheckIn(ctx, dto)
		require.Error(t, err)

		// chỗ vẫn trống, nhận lại được
		_, err = env.svc.CheckIn(ctx, dto)
		assert.NoError(t, err)
	})

	t.Run("loại xe không hợp lệ", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{Plate: "ABC123", VehicleClass: "boat", SpotID: "F1-R3-S21"})
		assert.Error(t, err)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("tất toán đầy đủ", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21",
			EntryTime: entryTimeAgo(26),
		})
		require.NoError(t, err)

		receipt, err := env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "abc 123", PaymentMethod: "cash"})
		require.NoError(t, err)
		assert.Equal(t, int64(26), receipt.HoursCharged)
		assert.Equal(t, 130.0, receipt.ParkingFee) // 26 giờ x 5
		assert.Equal(t, 50.0, receipt.OverstayFine)
		assert.Equal(t, 180.0, receipt.Total)

		// phiên đã đóng, thanh toán đã ghi
		_, err = env.svc.SessionForPlate("ABC123")
		assert.ErrorIs(t, err, facility.ErrNoOpenSession)
		payments, err := env.svc.PaymentsForPlate(ctx, "ABC123")
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, 180.0, payments[0].Total)
	})

	t.Run("trả xe hai lần không có tác dụng", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(1),
		})
		require.NoError(t, err)
		_, err = env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "ABC123"})
		require.NoError(t, err)
		_, err = env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "ABC123"})
		assert.ErrorIs(t, err, facility.ErrNoOpenSession)
	})

	t.Run("chỉ thu phí thì khoản phạt vào sổ tồn đọng", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(26),
		})
		require.NoError(t, err)

		receipt, err := env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "ABC123", FeeOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 130.0, receipt.PaidAmount)
		assert.Equal(t, 50.0, receipt.OutstandingAfter)

		outstanding, err := env.svc.OutstandingFines(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, 50.0, outstanding)
	})

	t.Run("thu đủ thì xóa nợ tồn đọng", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.IssueMisuseFine(ctx, domain.IssueFineDTO{Plate: "ABC123", Reason: "đỗ chỗ handicapped không có thẻ"})
		require.NoError(t, err)

		_, err = env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(2),
		})
		require.NoError(t, err)
		receipt, err := env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "ABC123"})
		require.NoError(t, err)
		assert.Equal(t, 100.0, receipt.PriorFines)
		assert.Equal(t, 110.0, receipt.Total)

		outstanding, err := env.svc.OutstandingFines(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, 0.0, outstanding)
	})

	t.Run("chủ thẻ OKU hưởng đơn giá ưu đãi", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.svc.RegisterCardHolder(ctx, domain.PlateRegistrationDTO{Plate: "OKU001"}))
		_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
			Plate: "OKU001", VehicleClass: "Handicapped Vehicle", SpotID: "F1-R1-S06", EntryTime: entryTimeAgo(2),
		})
		require.NoError(t, err)
		receipt, err := env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "OKU001"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, receipt.ParkingFee) // xe khuyết tật + thẻ + chỗ handicapped
		assert.Equal(t, 0.0, receipt.Total)
	})
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
		Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(3),
	})
	require.NoError(t, err)

	receipt, err := env.svc.Quote(ctx, domain.QuoteRequestDTO{Plate: "ABC123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), receipt.HoursCharged)

	// báo giá không đóng phiên
	_, err = env.svc.SessionForPlate("ABC123")
	assert.NoError(t, err)
}

func TestActivateSchemeAffectsNewEntriesOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// xe vào trước khi đổi biểu
	_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
		Plate: "OLD111", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(30),
	})
	require.NoError(t, err)

	_, err = env.svc.ActivateScheme(ctx, domain.ActivateSchemeDTO{Scheme: billing.SchemeHourly})
	require.NoError(t, err)

	receipt, err := env.svc.CheckOut(ctx, domain.VehicleCheckOutDTO{Plate: "OLD111"})
	require.NoError(t, err)
	assert.Equal(t, billing.SchemeFixed, receipt.FineScheme)
	assert.Equal(t, 50.0, receipt.OverstayFine)

	assert.Len(t, env.svc.SchemeHistory(), 1)

	_, err = env.svc.ActivateScheme(ctx, domain.ActivateSchemeDTO{Scheme: "bogus"})
	assert.Error(t, err)
}

func TestSpotsFilter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
		Plate: "ABC123", VehicleClass: "motorcycle", SpotID: "F1-R2-S11",
	})
	require.NoError(t, err)

	all, err := env.svc.Spots(domain.SpotFilterDTO{})
	require.NoError(t, err)
	assert.Len(t, all, 150)

	occupied, err := env.svc.Spots(domain.SpotFilterDTO{Status: "occupied"})
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, "ABC123", occupied[0].Plate)

	floor2compact, err := env.svc.Spots(domain.SpotFilterDTO{Floor: "2", Class: "compact"})
	require.NoError(t, err)
	assert.Len(t, floor2compact, 10)

	avail := env.svc.Availability()
	assert.Equal(t, 49, avail[domain.SpotCompact])
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.CheckIn(ctx, domain.VehicleCheckInDTO{
		Plate: "ABC123", VehicleClass: "car", SpotID: "F1-R3-S21", EntryTime: entryTimeAgo(5),
	})
	require.NoError(t, err)
	_, err = env.svc.ActivateScheme(ctx, domain.ActivateSchemeDTO{Scheme: billing.SchemeProgressive})
	require.NoError(t, err)

	// dựng service mới trên cùng storage, mô phỏng restart
	catalog, err := facility.NewFacility("test", facility.DefaultLayout())
	require.NoError(t, err)
	timeline := billing.NewTimeline()
	restarted := NewParkingService(catalog, facility.NewLedger(catalog), billing.NewEngine(timeline, false), timeline,
		env.sessionRepo, env.paymentRepo, env.fineRepo, env.schemeRepo, env.registry)
	require.NoError(t, restarted.Restore(ctx))

	session, err := restarted.SessionForPlate("ABC123")
	require.NoError(t, err)
	assert.Equal(t, "F1-R3-S21", session.SpotID.String())
	assert.Len(t, restarted.SchemeHistory(), 1)
}

package facility

import (
	"errors"
	"sync"
	"time"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

var (
	ErrSpotNotFound       = errors.New("chỗ đỗ không tồn tại trong danh mục")
	ErrSpotOccupied       = errors.New("chỗ đỗ đang có xe")
	ErrIncompatibleSpot   = errors.New("loại xe không tương thích với loại chỗ đỗ")
	ErrSessionAlreadyOpen = errors.New("biển số đang có phiên đỗ mở")
	ErrNoOpenSession      = errors.New("biển số không có phiên đỗ mở")
)

// Ledger giữ trạng thái chiếm chỗ runtime của một bãi: chỗ nào đang có xe
// và phiên đỗ mở của từng biển số. Mọi thao tác đổi trạng thái là nguyên tử
// dưới một mutex; kiểm tra và gán chỗ không bao giờ tách rời nhau.
type Ledger struct {
	mu       sync.Mutex
	catalog  *Facility
	occupied map[string]string                // mã chỗ chuẩn -> biển số
	sessions map[string]domain.ParkingSession // biển số -> phiên mở
}

func NewLedger(catalog *Facility) *Ledger {
	return &Ledger{
		catalog:  catalog,
		occupied: make(map[string]string),
		sessions: make(map[string]domain.ParkingSession),
	}
}

// Park gán xe vào chỗ và mở phiên. Thứ tự kiểm tra cố định: chỗ tồn tại,
// chỗ trống, loại tương thích, biển số chưa có phiên mở. Sai ở bước nào
// trả lỗi bước đó, trạng thái không đổi.
func (l *Ledger) Park(plate string, vehicle domain.VehicleClass, spotID domain.SpotID, elevated bool, entryTime time.Time) (domain.ParkingSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	spot, ok := l.catalog.SpotByID(spotID)
	if !ok {
		return domain.ParkingSession{}, ErrSpotNotFound
	}
	key := spotID.String()
	if _, busy := l.occupied[key]; busy {
		return domain.ParkingSession{}, ErrSpotOccupied
	}
	if !CanPark(vehicle, spot.Class, elevated) {
		return domain.ParkingSession{}, ErrIncompatibleSpot
	}
	if _, open := l.sessions[plate]; open {
		return domain.ParkingSession{}, ErrSessionAlreadyOpen
	}

	session := domain.ParkingSession{
		Plate:        plate,
		VehicleClass: vehicle,
		SpotID:       spotID,
		SpotClass:    spot.Class,
		EntryTime:    entryTime.UTC(),
	}
	l.occupied[key] = plate
	l.sessions[plate] = session
	return session, nil
}

// Release đóng phiên của biển số và trả chỗ về trạng thái trống. Trả về
// phiên vừa đóng. Gọi lần hai cho cùng biển số trả ErrNoOpenSession mà
// không đổi trạng thái gì (idempotent về mặt trạng thái).
func (l *Ledger) Release(plate string) (domain.ParkingSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session, open := l.sessions[plate]
	if !open {
		return domain.ParkingSession{}, ErrNoOpenSession
	}
	delete(l.sessions, plate)
	delete(l.occupied, session.SpotID.String())
	return session, nil
}

// SessionFor trả về phiên mở của biển số nếu có.
func (l *Ledger) SessionFor(plate string) (domain.ParkingSession, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sessions[plate]
	return s, ok
}

// OpenSessions liệt kê mọi phiên đang mở.
func (l *Ledger) OpenSessions() []domain.ParkingSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ParkingSession, 0, len(l.sessions))
	for _, s := range l.sessions {
		out = append(out, s)
	}
	return out
}

// Snapshot trả về danh mục kèm trạng thái chiếm chỗ hiện tại, theo thứ tự
// tầng, hàng, số chỗ.
func (l *Ledger) Snapshot() []domain.Spot {
	l.mu.Lock()
	defer l.mu.Unlock()
	spots := l.catalog.AllSpots()
	for i := range spots {
		if plate, busy := l.occupied[spots[i].ID.String()]; busy {
			spots[i].Occupied = true
			spots[i].Plate = plate
		}
	}
	return spots
}

// AvailableByClass đếm số chỗ trống theo từng loại.
func (l *Ledger) AvailableByClass() map[domain.SpotClass]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[domain.SpotClass]int)
	for _, s := range l.catalog.AllSpots() {
		if _, busy := l.occupied[s.ID.String()]; !busy {
			counts[s.Class]++
		}
	}
	return counts
}

// Restore nạp lại các phiên mở từ storage khi khởi động. Phiên trỏ tới chỗ
// không còn trong danh mục hoặc trùng chỗ/biển số với phiên đã nạp sẽ bị
// bỏ qua và trả về trong danh sách skipped để caller ghi log.
func (l *Ledger) Restore(sessions []domain.ParkingSession) (skipped []domain.ParkingSession) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range sessions {
		key := s.SpotID.String()
		if _, ok := l.catalog.SpotByID(s.SpotID); !ok {
			skipped = append(skipped, s)
			continue
		}
		if _, busy := l.occupied[key]; busy {
			skipped = append(skipped, s)
			continue
		}
		if _, open := l.sessions[s.Plate]; open {
			skipped = append(skipped, s)
			continue
		}
		l.occupied[key] = s.Plate
		l.sessions[s.Plate] = s
	}
	return skipped
}

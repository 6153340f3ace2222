package facility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	f, err := NewFacility("test", DefaultLayout())
	require.NoError(t, err)
	return NewLedger(f)
}

func TestLedgerPark(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("gán chỗ thành công", func(t *testing.T) {
		l := newTestLedger(t)
		spot := domain.SpotID{Floor: 1, Row: 3, Index: 21}
		session, err := l.Park("ABC123", domain.VehicleCar, spot, false, entry)
		require.NoError(t, err)
		assert.Equal(t, "ABC123", session.Plate)
		assert.Equal(t, domain.SpotRegular, session.SpotClass)
		assert.Equal(t, entry, session.EntryTime)

		got, ok := l.SessionFor("ABC123")
		require.True(t, ok)
		assert.Equal(t, session, got)
	})

	t.Run("chỗ không tồn tại", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.Park("ABC123", domain.VehicleCar, domain.SpotID{Floor: 9, Row: 1, Index: 1}, false, entry)
		assert.ErrorIs(t, err, ErrSpotNotFound)
	})

	t.Run("chỗ đang có xe", func(t *testing.T) {
		l := newTestLedger(t)
		spot := domain.SpotID{Floor: 1, Row: 3, Index: 21}
		_, err := l.Park("ABC123", domain.VehicleCar, spot, false, entry)
		require.NoError(t, err)
		_, err = l.Park("XYZ789", domain.VehicleCar, spot, false, entry)
		assert.ErrorIs(t, err, ErrSpotOccupied)
	})

	t.Run("loại xe không tương thích", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.Park("ABC123", domain.VehicleSUV, domain.SpotID{Floor: 1, Row: 2, Index: 11}, false, entry)
		assert.ErrorIs(t, err, ErrIncompatibleSpot)
	})

	t.Run("biển số đã có phiên mở", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.Park("ABC123", domain.VehicleCar, domain.SpotID{Floor: 1, Row: 3, Index: 21}, false, entry)
		require.NoError(t, err)
		_, err = l.Park("ABC123", domain.VehicleCar, domain.SpotID{Floor: 1, Row: 3, Index: 22}, false, entry)
		assert.ErrorIs(t, err, ErrSessionAlreadyOpen)

		// chỗ thứ hai vẫn trống vì thao tác thất bại không đổi trạng thái
		_, err = l.Park("XYZ789", domain.VehicleCar, domain.SpotID{Floor: 1, Row: 3, Index: 22}, false, entry)
		assert.NoError(t, err)
	})

	t.Run("chỗ reserved cần quyền ưu tiên", func(t *testing.T) {
		l := newTestLedger(t)
		spot := domain.SpotID{Floor: 1, Row: 1, Index: 1}
		_, err := l.Park("ABC123", domain.VehicleCar, spot, false, entry)
		assert.ErrorIs(t, err, ErrIncompatibleSpot)
		_, err = l.Park("ABC123", domain.VehicleCar, spot, true, entry)
		assert.NoError(t, err)
	})
}

func TestLedgerRelease(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	l := newTestLedger(t)
	spot := domain.SpotID{Floor: 2, Row: 3, Index: 23}
	_, err := l.Park("ABC123", domain.VehicleCar, spot, false, entry)
	require.NoError(t, err)

	session, err := l.Release("ABC123")
	require.NoError(t, err)
	assert.Equal(t, spot, session.SpotID)

	// trả xe lần hai không có tác dụng
	_, err = l.Release("ABC123")
	assert.ErrorIs(t, err, ErrNoOpenSession)

	// chỗ đã trống trở lại
	_, err = l.Park("XYZ789", domain.VehicleCar, spot, false, entry)
	assert.NoError(t, err)
}

func TestLedgerSnapshot(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	l := newTestLedger(t)
	_, err := l.Park("ABC123", domain.VehicleMotorcycle, domain.SpotID{Floor: 1, Row: 2, Index: 11}, false, entry)
	require.NoError(t, err)

	spots := l.Snapshot()
	require.Len(t, spots, 150)
	// F1-R2-S11 là chỗ thứ 11 theo thứ tự duyệt
	assert.True(t, spots[10].Occupied)
	assert.Equal(t, "ABC123", spots[10].Plate)
	assert.False(t, spots[0].Occupied)

	counts := l.AvailableByClass()
	assert.Equal(t, 49, counts[domain.SpotCompact])
	assert.Equal(t, 50, counts[domain.SpotRegular])
}

func TestLedgerRestore(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	l := newTestLedger(t)

	sessions := []domain.ParkingSession{
		{Plate: "AAA111", VehicleClass: domain.VehicleCar, SpotID: domain.SpotID{Floor: 1, Row: 3, Index: 21}, SpotClass: domain.SpotRegular, EntryTime: entry},
		{Plate: "BBB222", VehicleClass: domain.VehicleCar, SpotID: domain.SpotID{Floor: 1, Row: 3, Index: 21}, SpotClass: domain.SpotRegular, EntryTime: entry}, // trùng chỗ
		{Plate: "CCC333", VehicleClass: domain.VehicleCar, SpotID: domain.SpotID{Floor: 9, Row: 1, Index: 1}, SpotClass: domain.SpotRegular, EntryTime: entry}, // chỗ không tồn tại
	}
	skipped := l.Restore(sessions)
	require.Len(t, skipped, 2)

	_, ok := l.SessionFor("AAA111")
	assert.True(t, ok)
	_, ok = l.SessionFor("BBB222")
	assert.False(t, ok)
}

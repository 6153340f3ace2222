package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

func TestDefaultLayout(t *testing.T) {
	f, err := NewFacility("main", DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, 150, f.TotalSpots())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, f.Floors())
	assert.Len(t, f.SpotsOnFloor(3), 30)
	assert.Len(t, f.SpotsByClass(domain.SpotCompact), 50)
	assert.Len(t, f.SpotsByClass(domain.SpotRegular), 50)
	assert.Len(t, f.SpotsByClass(domain.SpotHandicapped), 15)
	assert.Len(t, f.SpotsByClass(domain.SpotReserved), 35)
}

func TestFacilityLookup(t *testing.T) {
	f, err := NewFacility("main", DefaultLayout())
	require.NoError(t, err)

	t.Run("ranh giới reserved và handicapped ở hàng 1", func(t *testing.T) {
		class, ok := f.ClassOf(domain.SpotID{Floor: 1, Row: 1, Index: 5})
		require.True(t, ok)
		assert.Equal(t, domain.SpotReserved, class)

		class, ok = f.ClassOf(domain.SpotID{Floor: 1, Row: 1, Index: 6})
		require.True(t, ok)
		assert.Equal(t, domain.SpotHandicapped, class)
	})

	t.Run("hàng 2 là compact đánh số tiếp", func(t *testing.T) {
		spot, ok := f.SpotByID(domain.SpotID{Floor: 2, Row: 2, Index: 13})
		require.True(t, ok)
		assert.Equal(t, domain.SpotCompact, spot.Class)
		assert.Equal(t, "F2-R2-S13", spot.ID.String())
	})

	t.Run("tầng 4-5 hàng 1 toàn bộ reserved", func(t *testing.T) {
		class, ok := f.ClassOf(domain.SpotID{Floor: 4, Row: 1, Index: 6})
		require.True(t, ok)
		assert.Equal(t, domain.SpotReserved, class)
	})

	t.Run("chỗ không tồn tại", func(t *testing.T) {
		_, ok := f.SpotByID(domain.SpotID{Floor: 6, Row: 1, Index: 1})
		assert.False(t, ok)
		// hàng 2 bắt đầu từ số 11, không có F1-R2-S05
		_, ok = f.SpotByID(domain.SpotID{Floor: 1, Row: 2, Index: 5})
		assert.False(t, ok)
	})
}

func TestNewFacilityValidation(t *testing.T) {
	_, err := NewFacility("bad", []FloorLayout{
		{Floor: 0, Segments: []RowSegment{{Row: 1, Class: domain.SpotCompact, Spots: 1}}},
	})
	assert.Error(t, err)

	_, err = NewFacility("bad", []FloorLayout{
		{Floor: 1, Segments: []RowSegment{{Row: 0, Class: domain.SpotCompact, Spots: 1}}},
	})
	assert.Error(t, err)

	_, err = NewFacility("bad", []FloorLayout{
		{Floor: 1, Segments: []RowSegment{{Row: 1, Class: domain.SpotClass("huge"), Spots: 1}}},
	})
	assert.Error(t, err)
}

func TestCanPark(t *testing.T) {
	cases := []struct {
		name     string
		vehicle  domain.VehicleClass
		spot     domain.SpotClass
		elevated bool
		want     bool
	}{
		{"xe máy vào compact", domain.VehicleMotorcycle, domain.SpotCompact, false, true},
		{"xe máy vào regular", domain.VehicleMotorcycle, domain.SpotRegular, false, false},
		{"xe máy vào reserved dù có ưu tiên", domain.VehicleMotorcycle, domain.SpotReserved, true, false},
		{"ô tô vào compact", domain.VehicleCar, domain.SpotCompact, false, true},
		{"ô tô vào regular", domain.VehicleCar, domain.SpotRegular, false, true},
		{"ô tô vào handicapped", domain.VehicleCar, domain.SpotHandicapped, false, false},
		{"suv vào regular", domain.VehicleSUV, domain.SpotRegular, false, true},
		{"suv vào compact", domain.VehicleSUV, domain.SpotCompact, false, false},
		{"xe khuyết tật vào handicapped", domain.VehicleHandicapped, domain.SpotHandicapped, false, true},
		{"xe khuyết tật vào compact", domain.VehicleHandicapped, domain.SpotCompact, false, true},
		{"xe khuyết tật vào regular", domain.VehicleHandicapped, domain.SpotRegular, false, true},
		{"xe khuyết tật vào reserved không ưu tiên", domain.VehicleHandicapped, domain.SpotReserved, false, false},
		{"ô tô vào reserved có ưu tiên", domain.VehicleCar, domain.SpotReserved, true, true},
		{"ô tô vào reserved không ưu tiên", domain.VehicleCar, domain.SpotReserved, false, false},
		{"suv vào reserved có ưu tiên", domain.VehicleSUV, domain.SpotReserved, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanPark(tc.vehicle, tc.spot, tc.elevated))
		})
	}
}

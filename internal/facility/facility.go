package facility

import (
	"fmt"
	"sort"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

// FloorLayout mô tả một tầng dưới dạng các đoạn chỗ cùng loại. Số thứ tự
// chỗ được đánh liên tục trong tầng theo thứ tự khai báo các đoạn, nên một
// hàng có thể gồm nhiều đoạn khác loại.
type FloorLayout struct {
	Floor    int
	Segments []RowSegment
}

type RowSegment struct {
	Row   int
	Class domain.SpotClass
	Spots int
}

// DefaultLayout là cấu trúc bãi mặc định: 5 tầng, mỗi tầng 30 chỗ đánh số
// liên tục 1..30 qua 3 hàng (10 chỗ mỗi hàng). Tầng 1-3: hàng 1 gồm 5
// reserved rồi 5 handicapped, hàng 2 compact, hàng 3 regular. Tầng 4-5:
// hàng 1 toàn bộ reserved.
func DefaultLayout() []FloorLayout {
	layouts := make([]FloorLayout, 0, 5)
	for f := 1; f <= 5; f++ {
		var segments []RowSegment
		if f <= 3 {
			segments = []RowSegment{
				{Row: 1, Class: domain.SpotReserved, Spots: 5},
				{Row: 1, Class: domain.SpotHandicapped, Spots: 5},
				{Row: 2, Class: domain.SpotCompact, Spots: 10},
				{Row: 3, Class: domain.SpotRegular, Spots: 10},
			}
		} else {
			segments = []RowSegment{
				{Row: 1, Class: domain.SpotReserved, Spots: 10},
				{Row: 2, Class: domain.SpotCompact, Spots: 10},
				{Row: 3, Class: domain.SpotRegular, Spots: 10},
			}
		}
		layouts = append(layouts, FloorLayout{Floor: f, Segments: segments})
	}
	return layouts
}

// Facility là danh mục chỗ đỗ cố định của một bãi. Danh mục bất biến sau
// khi tạo; trạng thái chiếm chỗ nằm ở Ledger, không nằm ở đây. Nhiều bãi
// có thể tồn tại song song, mỗi bãi một Facility riêng.
type Facility struct {
	Name  string
	spots map[string]domain.Spot // key = mã chỗ dạng chuẩn
	order []string               // thứ tự duyệt ổn định: tầng, hàng, số chỗ
}

// NewFacility dựng danh mục từ layout. Trả lỗi nếu layout sinh ra mã chỗ
// trùng nhau hoặc loại chỗ không hợp lệ.
func NewFacility(name string, layouts []FloorLayout) (*Facility, error) {
	f := &Facility{
		Name:  name,
		spots: make(map[string]domain.Spot),
	}
	for _, fl := range layouts {
		if fl.Floor < 1 {
			return nil, fmt.Errorf("số tầng không hợp lệ: %d", fl.Floor)
		}
		next := 1
		for _, seg := range fl.Segments {
			if seg.Row < 1 {
				return nil, fmt.Errorf("số hàng không hợp lệ ở tầng %d: %d", fl.Floor, seg.Row)
			}
			if !seg.Class.Valid() {
				return nil, fmt.Errorf("loại chỗ đỗ không hợp lệ ở tầng %d: %q", fl.Floor, seg.Class)
			}
			for s := 0; s < seg.Spots; s++ {
				id := domain.SpotID{Floor: fl.Floor, Row: seg.Row, Index: next}
				next++
				key := id.String()
				if _, ok := f.spots[key]; ok {
					return nil, fmt.Errorf("mã chỗ đỗ bị trùng: %s", key)
				}
				f.spots[key] = domain.Spot{ID: id, Class: seg.Class}
				f.order = append(f.order, key)
			}
		}
	}
	return f, nil
}

// SpotByID tra cứu chỗ theo mã chuẩn. ok = false nếu chỗ không tồn tại
// trong danh mục.
func (f *Facility) SpotByID(id domain.SpotID) (domain.Spot, bool) {
	s, ok := f.spots[id.String()]
	return s, ok
}

// ClassOf trả về loại chỗ trong danh mục; danh mục là nguồn sự thật,
// phần loại ghi trong mã chỗ dạng cũ bị bỏ qua.
func (f *Facility) ClassOf(id domain.SpotID) (domain.SpotClass, bool) {
	s, ok := f.spots[id.String()]
	return s.Class, ok
}

// AllSpots trả về toàn bộ chỗ theo thứ tự tầng, hàng, số chỗ.
func (f *Facility) AllSpots() []domain.Spot {
	out := make([]domain.Spot, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.spots[key])
	}
	return out
}

// SpotsOnFloor lọc chỗ theo tầng.
func (f *Facility) SpotsOnFloor(floor int) []domain.Spot {
	var out []domain.Spot
	for _, key := range f.order {
		if s := f.spots[key]; s.ID.Floor == floor {
			out = append(out, s)
		}
	}
	return out
}

// SpotsByClass lọc chỗ theo loại.
func (f *Facility) SpotsByClass(class domain.SpotClass) []domain.Spot {
	var out []domain.Spot
	for _, key := range f.order {
		if s := f.spots[key]; s.Class == class {
			out = append(out, s)
		}
	}
	return out
}

// Floors liệt kê các tầng có trong danh mục, tăng dần.
func (f *Facility) Floors() []int {
	seen := make(map[int]bool)
	var floors []int
	for _, key := range f.order {
		fl := f.spots[key].ID.Floor
		if !seen[fl] {
			seen[fl] = true
			floors = append(floors, fl)
		}
	}
	sort.Ints(floors)
	return floors
}

// TotalSpots là tổng số chỗ trong danh mục.
func (f *Facility) TotalSpots() int {
	return len(f.order)
}

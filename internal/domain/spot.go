package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type SpotClass string

const (
	SpotCompact     SpotClass = "compact"
	SpotRegular     SpotClass = "regular"
	SpotHandicapped SpotClass = "handicapped"
	SpotReserved    SpotClass = "reserved"
)

// BaseHourlyRate trả về đơn giá cơ bản theo giờ của loại chỗ đỗ.
// Loại không xác định dùng giá mặc định 5.00.
func (c SpotClass) BaseHourlyRate() float64 {
	switch c {
	case SpotCompact:
		return 2.00
	case SpotRegular:
		return 5.00
	case SpotHandicapped:
		return 2.00
	case SpotReserved:
		return 10.00
	default:
		return 5.00
	}
}

func (c SpotClass) Valid() bool {
	switch c {
	case SpotCompact, SpotRegular, SpotHandicapped, SpotReserved:
		return true
	}
	return false
}

// Display trả về tên hiển thị viết hoa chữ đầu, dùng trong mã chỗ đỗ kiểu cũ
// và trên UI (ví dụ "Compact").
func (c SpotClass) Display() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseSpotClass chấp nhận cả tên hiển thị ("Compact") lẫn giá trị nội bộ
// ("compact").
func ParseSpotClass(s string) (SpotClass, error) {
	c := SpotClass(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("loại chỗ đỗ không hợp lệ: %q", s)
	}
	return c, nil
}

// SpotID là định danh chính tắc của một chỗ đỗ: (tầng, hàng, số thứ tự).
type SpotID struct {
	Floor int `json:"floor"`
	Row   int `json:"row"`
	Index int `json:"index"`
}

// Hai định dạng chuỗi từng tồn tại cho cùng một chỗ đỗ:
//   - nội bộ:  F1-R2-S13
//   - UI cũ:   F1-Compact-R2S13
// Hệ thống chỉ lưu định dạng nội bộ; định dạng UI chỉ được chấp nhận khi parse.
var (
	internalSpotIDPattern = regexp.MustCompile(`^F(\d+)-R(\d+)-S(\d+)$`)
	legacySpotIDPattern   = regexp.MustCompile(`^F(\d+)-([A-Za-z]+)-R(\d+)S(\d+)$`)
)

// String render SpotID về định dạng nội bộ chính tắc.
func (id SpotID) String() string {
	return fmt.Sprintf("F%d-R%d-S%02d", id.Floor, id.Row, id.Index)
}

// LegacyString render SpotID về định dạng UI cũ, cần biết loại chỗ đỗ.
func (id SpotID) LegacyString(class SpotClass) string {
	return fmt.Sprintf("F%d-%s-R%dS%02d", id.Floor, class.Display(), id.Row, id.Index)
}

func (id SpotID) IsZero() bool {
	return id.Floor == 0 && id.Row == 0 && id.Index == 0
}

// ParseSpotID parse một chuỗi mã chỗ đỗ về định danh chính tắc. Chấp nhận cả
// hai định dạng; phần loại chỗ đỗ trong định dạng UI cũ bị bỏ qua (loại thật
// luôn lấy từ sơ đồ bãi, không tin chuỗi).
func ParseSpotID(s string) (SpotID, error) {
	s = strings.TrimSpace(s)
	if m := internalSpotIDPattern.FindStringSubmatch(s); m != nil {
		return spotIDFromParts(m[1], m[2], m[3])
	}
	if m := legacySpotIDPattern.FindStringSubmatch(s); m != nil {
		return spotIDFromParts(m[1], m[3], m[4])
	}
	return SpotID{}, fmt.Errorf("định dạng mã chỗ đỗ không hợp lệ: %q", s)
}

func spotIDFromParts(floor, row, index string) (SpotID, error) {
	f, _ := strconv.Atoi(floor)
	r, _ := strconv.Atoi(row)
	i, _ := strconv.Atoi(index)
	if f < 1 || r < 1 || i < 1 {
		return SpotID{}, fmt.Errorf("mã chỗ đỗ chứa thành phần không hợp lệ: F%s-R%s-S%s", floor, row, index)
	}
	return SpotID{Floor: f, Row: r, Index: i}, nil
}

// Spot là một chỗ đỗ trong bãi. Loại chỗ đỗ cố định sau khi khởi tạo; chỉ
// trạng thái chiếm chỗ thay đổi (do OccupancyLedger quản lý).
type Spot struct {
	ID       SpotID    `json:"id"`
	Class    SpotClass `json:"class"`
	Occupied bool      `json:"occupied"`
	Plate    string    `json:"plate,omitempty"`
}

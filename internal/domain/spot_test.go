package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotClassBaseHourlyRate(t *testing.T) {
	assert.Equal(t, 2.00, SpotCompact.BaseHourlyRate())
	assert.Equal(t, 5.00, SpotRegular.BaseHourlyRate())
	assert.Equal(t, 2.00, SpotHandicapped.BaseHourlyRate())
	assert.Equal(t, 10.00, SpotReserved.BaseHourlyRate())
	assert.Equal(t, 5.00, SpotClass("unknown").BaseHourlyRate())
}

func TestParseSpotClass(t *testing.T) {
	t.Run("giá trị nội bộ", func(t *testing.T) {
		c, err := ParseSpotClass("compact")
		require.NoError(t, err)
		assert.Equal(t, SpotCompact, c)
	})

	t.Run("tên hiển thị", func(t *testing.T) {
		c, err := ParseSpotClass(" Reserved ")
		require.NoError(t, err)
		assert.Equal(t, SpotReserved, c)
		assert.Equal(t, "Reserved", c.Display())
	})

	t.Run("không hợp lệ", func(t *testing.T) {
		_, err := ParseSpotClass("huge")
		assert.Error(t, err)
	})
}

func TestParseSpotID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  SpotID
		ok    bool
	}{
		{"định dạng nội bộ", "F1-R2-S13", SpotID{Floor: 1, Row: 2, Index: 13}, true},
		{"định dạng nội bộ có số 0 đầu", "F3-R4-S05", SpotID{Floor: 3, Row: 4, Index: 5}, true},
		{"định dạng UI cũ", "F1-Compact-R2S13", SpotID{Floor: 1, Row: 2, Index: 13}, true},
		{"UI cũ bỏ qua loại trong chuỗi", "F2-Regular-R1S07", SpotID{Floor: 2, Row: 1, Index: 7}, true},
		{"có khoảng trắng bao quanh", "  F1-R1-S01  ", SpotID{Floor: 1, Row: 1, Index: 1}, true},
		{"tầng 0", "F0-R1-S01", SpotID{}, false},
		{"thiếu số thứ tự", "F1-R2", SpotID{}, false},
		{"chuỗi rỗng", "", SpotID{}, false},
		{"loại chen sai vị trí", "Compact-F1-R2S13", SpotID{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSpotID(tc.input)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSpotIDRoundTrip(t *testing.T) {
	id := SpotID{Floor: 1, Row: 2, Index: 3}

	assert.Equal(t, "F1-R2-S03", id.String())
	assert.Equal(t, "F1-Compact-R2S03", id.LegacyString(SpotCompact))

	// Cả hai dạng render ra đều parse ngược về cùng một định danh.
	fromInternal, err := ParseSpotID(id.String())
	require.NoError(t, err)
	fromLegacy, err := ParseSpotID(id.LegacyString(SpotCompact))
	require.NoError(t, err)
	assert.Equal(t, id, fromInternal)
	assert.Equal(t, id, fromLegacy)
}

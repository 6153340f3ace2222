package billing

import (
	"sync"
	"time"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
)

// Timeline là lịch sử kích hoạt biểu phạt, chỉ ghi thêm. Biểu áp dụng cho
// một phiên chọn theo thời điểm xe VÀO: mốc mới nhất có ActivatedAt <=
// entryTime; nhiều mốc cùng thời điểm thì mốc ghi sau thắng. Chưa có mốc
// nào phù hợp thì dùng biểu mặc định.
type Timeline struct {
	mu      sync.RWMutex
	entries []domain.FineSchemeActivation
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Load nạp lịch sử từ storage khi khởi động. entries phải theo thứ tự ghi
// (activated_at tăng dần, cùng mốc thì theo id).
func (t *Timeline) Load(entries []domain.FineSchemeActivation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append([]domain.FineSchemeActivation(nil), entries...)
}

// Activate ghi thêm một mốc kích hoạt. Tên biểu phải hợp lệ.
func (t *Timeline) Activate(name string, at time.Time) (domain.FineSchemeActivation, error) {
	if _, err := SchemeByName(name); err != nil {
		return domain.FineSchemeActivation{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := domain.FineSchemeActivation{
		ID:          int64(len(t.entries) + 1),
		SchemeName:  name,
		ActivatedAt: at.UTC(),
	}
	t.entries = append(t.entries, entry)
	return entry, nil
}

// AppendEntry ghi thêm một mốc đã được storage cấp id sẵn.
func (t *Timeline) AppendEntry(entry domain.FineSchemeActivation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry.ActivatedAt = entry.ActivatedAt.UTC()
	t.entries = append(t.entries, entry)
}

// SchemeAt trả về biểu phạt hiệu lực tại thời điểm xe vào. Duyệt từ cuối
// về đầu để mốc ghi sau thắng khi trùng thời điểm.
func (t *Timeline) SchemeAt(entryTime time.Time) FineScheme {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.entries) - 1; i >= 0; i-- {
		if !t.entries[i].ActivatedAt.After(entryTime) {
			scheme, err := SchemeByName(t.entries[i].SchemeName)
			if err != nil {
				continue // mốc hỏng trong lịch sử không chặn các mốc trước đó
			}
			return scheme
		}
	}
	scheme, _ := SchemeByName(DefaultSchemeName)
	return scheme
}

// History trả về bản sao toàn bộ lịch sử theo thứ tự ghi.
func (t *Timeline) History() []domain.FineSchemeActivation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.FineSchemeActivation(nil), t.entries...)
}

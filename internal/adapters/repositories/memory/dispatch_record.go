package memory

import (
	"sync"
	"time"

	"github.com/iwtcode/lineDispatch/internal/domain/entities"
	"github.com/iwtcode/lineDispatch/internal/interfaces"
)

// DefaultCapacity - сколько записей журнала хранится в памяти
const DefaultCapacity = 1000

// DispatchRecordRepository хранит журнал отправок в кольцевом буфере.
// Используется, когда Postgres не настроен.
type DispatchRecordRepository struct {
	mu       sync.RWMutex
	records  []entities.DispatchRecord
	capacity int
}

func NewDispatchRecordRepository(capacity int) interfaces.DispatchRecordRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &DispatchRecordRepository{capacity: capacity}
}

func (r *DispatchRecordRepository) Create(record *entities.DispatchRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append(r.records[:0:0], r.records[over:]...)
	}
	return nil
}

func (r *DispatchRecordRepository) ListRecent(limit int) ([]entities.DispatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]entities.DispatchRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

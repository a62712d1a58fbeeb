package dispatch_record

import (
	"github.com/iwtcode/lineDispatch/internal/domain/entities"
)

func (r *DispatchRecordRepositoryImpl) Create(record *entities.DispatchRecord) error {
	return r.db.Create(record).Error
}

// ListRecent возвращает последние записи журнала, новые первыми
func (r *DispatchRecordRepositoryImpl) ListRecent(limit int) ([]entities.DispatchRecord, error) {
	var records []entities.DispatchRecord
	if err := r.db.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

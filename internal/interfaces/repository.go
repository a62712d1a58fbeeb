package interfaces

import (
	"github.com/iwtcode/lineDispatch/internal/domain/entities"
)

// DispatchRecordRepository определяет контракт журнала попыток запуска заказов
type DispatchRecordRepository interface {
	Create(record *entities.DispatchRecord) error
	ListRecent(limit int) ([]entities.DispatchRecord, error)
}

package dispatch_record

import (
	"github.com/iwtcode/lineDispatch/internal/interfaces"
	"gorm.io/gorm"
)

type DispatchRecordRepositoryImpl struct {
	db *gorm.DB
}

func NewDispatchRecordRepository(db *gorm.DB) interfaces.DispatchRecordRepository {
	return &DispatchRecordRepositoryImpl{db: db}
}

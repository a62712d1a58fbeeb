package entities

import "time"

const (
	OutcomeStarted  = "started"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// DispatchRecord - запись журнала отправок заказов на линии
type DispatchRecord struct {
	ID            string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	Line          string    `gorm:"index;not null" json:"line"`
	OrderNumber   string    `gorm:"index;not null" json:"order_number"`
	ProductCode   string    `json:"product_code"`
	Quantity      string    `json:"quantity"`
	OrderID       int32     `json:"order_id"`
	ProductCodeID uint16    `json:"product_code_id"`
	Outcome       string    `gorm:"not null" json:"outcome"` // started / rejected / failed
	Error         string    `json:"error"`
	RequestedAt   string    `json:"requested_at"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

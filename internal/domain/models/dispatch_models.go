package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDateLayout - формат даты заказа по умолчанию
const OrderDateLayout = "2006-01-02 15:04:05"

// UserRole - режим пульта оператора, записываемый в контроллер (UInt16)
type UserRole uint16

const (
	RoleUnknown     UserRole = 0
	RoleOperator    UserRole = 1
	RoleMaintenance UserRole = 2
)

// Valid проверяет, что роль входит в известный набор
func (r UserRole) Valid() bool {
	return r <= RoleMaintenance
}

// StartOrderRequest - тело запроса POST /orders/{orderNumber}/start.
// Поля-указатели позволяют отличить отсутствующее поле от нулевого значения.
type StartOrderRequest struct {
	Ilot     *string          `json:"ilot" example:"LGN01"`
	Code     *string          `json:"code" example:"Assembly (27)"`
	Quantity *decimal.Decimal `json:"quantity" swaggertype:"number" example:"12"`
	Date     *string          `json:"date,omitempty" example:"2025-04-29 13:00:00"`
}

// DispatchRequest - проверенный запрос на отправку заказа на линию
type DispatchRequest struct {
	Line        string
	OrderNumber string
	ProductCode string
	Quantity    decimal.Decimal
	Date        string
}

// DerivedOrderValues - значения, фактически записываемые в теги контроллера
type DerivedOrderValues struct {
	OrderID       int32  `json:"order_id"`
	ProductCodeID uint16 `json:"product_code_id"`
	Quantity      int32  `json:"quantity"`
}

// RoleRequest - тело запроса POST /ilots/{ilot}/role
type RoleRequest struct {
	Role *int `json:"role" example:"1"`
}

// ReferenceRequest - тело запроса POST /ilots/{ilot}/reference
type ReferenceRequest struct {
	Order string `json:"order" binding:"required" example:"WH/MO/00012"`
}

const (
	LineOn  = "ON"
	LineOff = "OFF"
)

// LineState - доступность контроллера линии
type LineState struct {
	Ilot string `json:"ilot" example:"LGN01"`
	Etat string `json:"etat" example:"ON"`
}

// LineRunState - значение тега автомата состояний линии
type LineRunState struct {
	Ilot  string `json:"ilot" example:"LGN01"`
	Code  int    `json:"code" example:"1"`
	Label string `json:"label" example:"RUN"`
}

// RunStateLabel переводит код автомата состояний в метку
func RunStateLabel(code int) string {
	switch code {
	case 0:
		return "STOP"
	case 1:
		return "RUN"
	case 2:
		return "ALARM"
	default:
		return "UNKNOWN"
	}
}

// DispatchEvent публикуется в брокер после каждой попытки отправки
type DispatchEvent struct {
	ID          string              `json:"id"`
	Ilot        string              `json:"ilot"`
	Order       string              `json:"order"`
	Code        string              `json:"code"`
	Quantity    string              `json:"quantity"`
	Outcome     string              `json:"outcome"`
	Error       string              `json:"error,omitempty"`
	Derived     *DerivedOrderValues `json:"derived,omitempty"`
	RequestedAt string              `json:"requested_at"`
	Timestamp   time.Time           `json:"timestamp"`
}

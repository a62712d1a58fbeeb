package models

import "time"

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"missing required fields: quantity"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Hello from the line dispatch API!"`
}

// OrdersResponse - список производственных заказов
type OrdersResponse struct {
	Orders []ManufacturingOrder `json:"orders"`
}

// ComponentsResponse - список компонентов заказа
type ComponentsResponse struct {
	Components []string `json:"components"`
}

// StartOrderResponse - ответ при успешной отправке заказа на линию
type StartOrderResponse struct {
	Status string `json:"status" example:"started"`
	Ilot   string `json:"ilot" example:"LGN01"`
	Order  string `json:"order" example:"WH/MO/00012"`
}

// StatusResponse - доступность всех линий
type StatusResponse struct {
	Ilots []LineState `json:"ilots"`
}

// DispatchRecordView - запись журнала отправок для API
type DispatchRecordView struct {
	ID            string    `json:"id"`
	Ilot          string    `json:"ilot"`
	Order         string    `json:"order"`
	Code          string    `json:"code"`
	Quantity      string    `json:"quantity"`
	OrderID       int32     `json:"order_id"`
	ProductCodeID uint16    `json:"product_code_id"`
	Outcome       string    `json:"outcome"`
	Error         string    `json:"error,omitempty"`
	RequestedAt   string    `json:"requested_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// DispatchesResponse - журнал отправок, новые записи первыми
type DispatchesResponse struct {
	Dispatches []DispatchRecordView `json:"dispatches"`
}

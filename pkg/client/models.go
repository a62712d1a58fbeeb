package client

import "github.com/shopspring/decimal"

// Quantity - количество, которое всегда кодируется в JSON числом, а не строкой
type Quantity struct {
	decimal.Decimal
}

func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Decimal: d}
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}

// Order - производственный заказ в том виде, в каком его отдает сервис
type Order struct {
	Number   string   `json:"numero"`
	Code     string   `json:"code"`
	Quantity Quantity `json:"quantite"`
	State    string   `json:"etat"`
}

// LineState - доступность линии: Etat равен "ON" или "OFF"
type LineState struct {
	Ilot string `json:"ilot"`
	Etat string `json:"etat"`
}

type ordersResponse struct {
	Orders []Order `json:"orders"`
}

type componentsResponse struct {
	Components []string `json:"components"`
}

type statusResponse struct {
	Ilots []LineState `json:"ilots"`
}

type startRequest struct {
	Ilot     string   `json:"ilot"`
	Code     string   `json:"code"`
	Quantity Quantity `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

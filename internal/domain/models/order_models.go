package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Количества отдаются числом, как их отдает бэкенд заказов
	decimal.MarshalJSONWithoutQuotes = true
}

// UnknownBOMCode подставляется, если у заказа нет спецификации или у спецификации нет кода
const UnknownBOMCode = "?"

// UnknownProduct подставляется, если у заказа не указан продукт
const UnknownProduct = "Article ?"

// ManufacturingOrder - снимок производственного заказа (OF) из бэкенда.
// Поле Code имеет вид "<продукт> (<код спецификации>)" и затем разбирается
// адаптером контроллера для получения числового кода продукта.
type ManufacturingOrder struct {
	Number       string          `json:"numero"`
	Code         string          `json:"code"`
	Quantity     decimal.Decimal `json:"quantite" swaggertype:"number"`
	State        string          `json:"etat"`
	ProductLabel string          `json:"product,omitempty"`
	BOMCode      string          `json:"bom_code,omitempty"`
}

// NewManufacturingOrder собирает заказ и его составной код
func NewManufacturingOrder(number, productLabel, bomCode string, qty decimal.Decimal, state string) ManufacturingOrder {
	if productLabel == "" {
		productLabel = UnknownProduct
	}
	if bomCode == "" {
		bomCode = UnknownBOMCode
	}
	return ManufacturingOrder{
		Number:       number,
		Code:         fmt.Sprintf("%s (%s)", productLabel, bomCode),
		Quantity:     qty,
		State:        state,
		ProductLabel: productLabel,
		BOMCode:      bomCode,
	}
}

// ComponentLine - строка компонента заказа (сырьевое перемещение)
type ComponentLine struct {
	Description string
	Quantity    decimal.Decimal
	// Informational отмечает служебную строку ("не найден", "нет компонентов")
	Informational bool
}

// String возвращает строку в формате "<продукт> x<количество>"
func (c ComponentLine) String() string {
	if c.Informational {
		return c.Description
	}
	return fmt.Sprintf("%s x%s", c.Description, c.Quantity.String())
}

// OrderNotFoundLine - служебная строка для отсутствующего заказа
func OrderNotFoundLine(orderNumber string) ComponentLine {
	return ComponentLine{Description: fmt.Sprintf("Order '%s' not found", orderNumber), Informational: true}
}

// NoComponentsLine - служебная строка для заказа без компонентов
func NoComponentsLine() ComponentLine {
	return ComponentLine{Description: "No components", Informational: true}
}

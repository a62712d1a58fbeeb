package plc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/shopspring/decimal"
)

// orderIDDigits - сколько последних символов номера заказа образуют его числовой id
const orderIDDigits = 5

var productCodePattern = regexp.MustCompile(`\((\d+)\)`)

// ParseOrderID извлекает id заказа из последних 5 символов ("WH/MO/00017" -> 17)
func ParseOrderID(orderNumber string) (int32, error) {
	if len(orderNumber) < orderIDDigits {
		return 0, fmt.Errorf("%w: %q короче %d символов", ErrInvalidOrderNumber, orderNumber, orderIDDigits)
	}
	tail := orderNumber[len(orderNumber)-orderIDDigits:]
	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q не оканчивается на %d цифр", ErrInvalidOrderNumber, orderNumber, orderIDDigits)
		}
	}
	id, err := strconv.ParseInt(tail, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOrderNumber, err)
	}
	return int32(id), nil
}

// ParseProductCodeID извлекает первое число в скобках ("Assembly (27)" -> 27).
// Если числа в скобках нет, возвращается 0.
func ParseProductCodeID(productCode string) (uint16, error) {
	match := productCodePattern.FindStringSubmatch(productCode)
	if match == nil {
		return 0, nil
	}
	id, err := strconv.ParseUint(match[1], 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q не помещается в UInt16", ErrInvalidProductCode, match[1])
	}
	return uint16(id), nil
}

// TruncateQuantity отбрасывает дробную часть количества
func TruncateQuantity(qty decimal.Decimal) (int32, error) {
	whole := qty.Truncate(0)
	if !whole.IsPositive() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuantity, qty.String())
	}
	if whole.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, fmt.Errorf("%w: %s превышает Int32", ErrInvalidQuantity, qty.String())
	}
	return int32(whole.IntPart()), nil
}

// DeriveOrderValues вычисляет все значения для записи в контроллер
func DeriveOrderValues(orderNumber, productCode string, qty decimal.Decimal) (models.DerivedOrderValues, error) {
	var derived models.DerivedOrderValues
	var err error

	if derived.OrderID, err = ParseOrderID(orderNumber); err != nil {
		return derived, err
	}
	if derived.ProductCodeID, err = ParseProductCodeID(productCode); err != nil {
		return derived, err
	}
	if derived.Quantity, err = TruncateQuantity(qty); err != nil {
		return derived, err
	}
	return derived, nil
}

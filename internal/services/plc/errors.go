package plc

import "errors"

// Ошибки входных данных: запрос отклоняется до открытия сессии
var (
	ErrUnknownLine        = errors.New("unknown line")
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrInvalidProductCode = errors.New("invalid product code")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidRole        = errors.New("invalid user role")
)

// Ошибки связи с контроллером
var (
	ErrControllerUnavailable = errors.New("controller unavailable")
	ErrControllerWrite       = errors.New("controller write failed")
	ErrControllerRead        = errors.New("controller read failed")
)

// IsInputError сообщает, вызвана ли ошибка некорректными входными данными
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownLine) ||
		errors.Is(err, ErrInvalidOrderNumber) ||
		errors.Is(err, ErrInvalidProductCode) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidRole)
}

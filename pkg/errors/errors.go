package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"

	BadRequestCode          = http.StatusBadRequest
	NotFoundErrorCode       = http.StatusNotFound
	InternalServerErrorCode = http.StatusInternalServerError
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code    int    `json:"code"`    // HTTP статус код
	Message string `json:"message"` // Сообщение для клиента
	Err     error  `json:"-"`       // Внутренняя ошибка, не для клиента
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error) *AppError {
	return &AppError{
		Code:    httpCode,
		Message: message,
		Err:     err,
	}
}

// Validation возвращает AppError с кодом 400.
func Validation(message string, err error) *AppError {
	return NewAppError(BadRequestCode, message, err)
}

// Internal возвращает AppError с кодом 500.
func Internal(message string, err error) *AppError {
	return NewAppError(InternalServerErrorCode, message, err)
}

// Missing возвращает AppError с кодом 404.
func Missing(message string, err error) *AppError {
	return NewAppError(NotFoundErrorCode, message, err)
}

// CodeOf возвращает HTTP код из цепочки ошибок, 500 если AppError не найден.
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalServerErrorCode
}

// MessageOf возвращает сообщение для клиента.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return InternalServerError
}

package handlers

import (
	"net/http"

	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает ответ вида {"error": "<сообщение>"}
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error(message, "error", err, "statusCode", statusCode, "path", c.Request.URL.Path)
	} else {
		h.logger.Warn(message, "error", err, "statusCode", statusCode, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message})
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.NotFound
	}
	h.ErrorResponse(c, err, http.StatusNotFound, message)
}

// Fail отвечает кодом и сообщением из AppError; прочие ошибки дают 500
func (h *Handler) Fail(c *gin.Context, err error) {
	h.ErrorResponse(c, err, errors.CodeOf(err), errors.MessageOf(err))
}

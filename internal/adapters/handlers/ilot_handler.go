package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/iwtcode/lineDispatch/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// SetUserRole записывает роль оператора в контроллер.
// @Summary Роль оператора
// @Tags Ilots
// @Accept json
// @Produce json
// @Param ilot path string true "Идентификатор линии" example(LGN01)
// @Param input body models.RoleRequest true "0 - нет, 1 - оператор, 2 - обслуживание"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Неверная роль"
// @Failure 404 {object} models.ErrorResponse "Неизвестная линия"
// @Failure 500 {object} models.ErrorResponse "Ошибка контроллера линии"
// @Router /ilots/{ilot}/role [post]
func (h *Handler) SetUserRole(c *gin.Context) {
	var req models.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	line := c.Param("ilot")
	if err := h.usecase.SetUserRole(c.Request.Context(), line, req); err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "role updated"})
}

// SetOrderReference записывает номер заказа в тег order_ref.
// @Summary Ссылка на заказ
// @Tags Ilots
// @Accept json
// @Produce json
// @Param ilot path string true "Идентификатор линии" example(LGN01)
// @Param input body models.ReferenceRequest true "Номер заказа"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Не указан номер заказа"
// @Failure 404 {object} models.ErrorResponse "Неизвестная линия"
// @Failure 500 {object} models.ErrorResponse "Ошибка контроллера линии"
// @Router /ilots/{ilot}/reference [post]
func (h *Handler) SetOrderReference(c *gin.Context) {
	var req models.ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "missing required fields: order")
		return
	}

	if err := h.usecase.SetOrderReference(c.Request.Context(), c.Param("ilot"), req); err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "reference written"})
}

// ListDispatches возвращает журнал отправок.
// @Summary Журнал отправок
// @Tags Dispatches
// @Produce json
// @Param limit query int false "Количество записей (по умолчанию 50, не более 500)"
// @Success 200 {object} models.DispatchesResponse
// @Failure 400 {object} models.ErrorResponse "Неверный limit"
// @Failure 500 {object} models.ErrorResponse "Ошибка хранилища"
// @Router /dispatches [get]
func (h *Handler) ListDispatches(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.BadRequest(c, err, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	dispatches, err := h.usecase.ListDispatches(c.Request.Context(), limit)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DispatchesResponse{Dispatches: dispatches})
}

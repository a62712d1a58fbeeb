package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/iwtcode/lineDispatch/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const startSuffix = "/start"

// Test проверяет, что сервис отвечает.
// @Summary Проверка доступности
// @Tags Service
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /test [get]
func (h *Handler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Hello from the line dispatch API!"})
}

// ListOrders возвращает последние производственные заказы.
// @Summary Список заказов
// @Description До 100 последних заказов, новые первыми. Поле code имеет вид "<продукт> (<код спецификации>)".
// @Tags Orders
// @Produce json
// @Success 200 {object} models.OrdersResponse
// @Failure 500 {object} models.ErrorResponse "Бэкенд заказов недоступен"
// @Router /orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.ListOrders(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrdersResponse{Orders: orders})
}

// ListComponents возвращает компоненты заказа.
// @Summary Компоненты заказа
// @Tags Orders
// @Produce json
// @Param of_name query string true "Номер заказа" example(WH/MO/00012)
// @Success 200 {object} models.ComponentsResponse
// @Failure 400 {object} models.ErrorResponse "Не указан of_name"
// @Failure 500 {object} models.ErrorResponse "Бэкенд заказов недоступен"
// @Router /orders/components [get]
func (h *Handler) ListComponents(c *gin.Context) {
	components, err := h.usecase.ListComponents(c.Request.Context(), c.Query("of_name"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ComponentsResponse{Components: components})
}

// StartOrder отправляет заказ на линию.
// @Summary Запуск заказа на линии
// @Description Записывает id заказа, код продукта и количество в теги контроллера, затем в фоне подает импульс подтверждения.
// @Tags Orders
// @Accept json
// @Produce json
// @Param orderNumber path string true "Номер заказа, может содержать '/'" example(WH/MO/00012)
// @Param input body models.StartOrderRequest true "Линия, код и количество"
// @Success 200 {object} models.StartOrderResponse
// @Failure 400 {object} models.ErrorResponse "Отсутствуют поля или значения не разбираются"
// @Failure 404 {object} models.ErrorResponse "Неизвестный маршрут"
// @Failure 500 {object} models.ErrorResponse "Ошибка контроллера линии"
// @Router /orders/{orderNumber}/start [post]
func (h *Handler) StartOrder(c *gin.Context) {
	orderNumber, ok := orderFromPath(c.Param("orderPath"))
	if !ok {
		h.NotFound(c, nil, "")
		return
	}

	var req models.StartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	resp, err := h.usecase.StartOrder(c.Request.Context(), orderNumber, req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// orderFromPath извлекает номер заказа из "/<номер>/start"
func orderFromPath(path string) (string, bool) {
	if !strings.HasSuffix(path, startSuffix) {
		return "", false
	}
	order := strings.Trim(strings.TrimSuffix(path, startSuffix), "/")
	return order, order != ""
}

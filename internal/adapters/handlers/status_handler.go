package handlers

import (
	"net/http"

	"github.com/iwtcode/lineDispatch/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetStatus возвращает доступность всех линий.
// @Summary Доступность линий
// @Description Недоступная линия получает etat=OFF, код ответа всегда 200.
// @Tags Status
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Ilots: h.usecase.GetStates(c.Request.Context())})
}

// GetRunState возвращает значение автомата состояний линии.
// @Summary Состояние линии
// @Tags Status
// @Produce json
// @Param ilot path string true "Идентификатор линии" example(LGN01)
// @Success 200 {object} models.LineRunState
// @Failure 404 {object} models.ErrorResponse "Неизвестная линия"
// @Failure 500 {object} models.ErrorResponse "Ошибка контроллера линии"
// @Router /status/{ilot}/state [get]
func (h *Handler) GetRunState(c *gin.Context) {
	state, err := h.usecase.GetRunState(c.Request.Context(), c.Param("ilot"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

package handlers

import (
	"net/http"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/interfaces"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
	"github.com/iwtcode/lineDispatch/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggingMiddleware(h.logger))

	api := router.Group("/api")
	{
		swagger.Setup(api, swagCfg)

		api.GET("/test", h.Test)

		// Номер заказа содержит '/', поэтому запуск разбирается из хвоста пути
		orders := api.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/components", h.ListComponents)
			orders.POST("/*orderPath", h.StartOrder)
		}

		status := api.Group("/status")
		{
			status.GET("", h.GetStatus)
			status.GET("/:ilot/state", h.GetRunState)
		}

		ilots := api.Group("/ilots/:ilot")
		{
			ilots.POST("/role", h.SetUserRole)
			ilots.POST("/reference", h.SetOrderReference)
		}

		api.GET("/dispatches", h.ListDispatches)
	}

	return router
}

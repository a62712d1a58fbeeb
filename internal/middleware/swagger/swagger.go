package swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/iwtcode/lineDispatch/docs"
)

// Config содержит настройки для Swagger
type Config struct {
	Enabled  bool
	Path     string
	BasePath string
}

// Setup инициализирует маршруты Swagger в группе r
func Setup(r gin.IRouter, cfg *Config) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	if cfg.BasePath != "" {
		docs.SwaggerInfo.BasePath = cfg.BasePath
	}
	r.GET(cfg.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

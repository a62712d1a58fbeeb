package handlers

import (
	"net/http"
	"time"

	"github.com/iwtcode/lineDispatch/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware пишет начало и завершение каждого запроса.
// Строка завершения содержит маршрут и линию из пути, если она есть.
func LoggingMiddleware(parentLogger *logging.Logger) gin.HandlerFunc {
	logger := parentLogger.WithPrefix("HTTP")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		logger.Debug("Request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.Request.RemoteAddr,
		)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if ilot := c.Param("ilot"); ilot != "" {
			fields = append(fields, "ilot", ilot)
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request completed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request completed", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}

// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartride/internal/http/handlers"
	"smartride/internal/http/middleware"
	"smartride/internal/modules/assistant"
)

func NewRouter(assistantSvc *assistant.Service, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	commandHandler := handlers.NewCommandHandler(assistantSvc)
	r.POST("/api/process-command", commandHandler.Process)
	r.POST("/api/schedule-recurring", commandHandler.ScheduleRecurring)

	statusHandler := handlers.NewStatusHandler(assistantSvc, time.Now())
	r.GET("/api/status", statusHandler.Status)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// README: Service status handler.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartride/internal/modules/assistant"
)

type StatusHandler struct {
	assistant *assistant.Service
	started   time.Time
}

func NewStatusHandler(svc *assistant.Service, started time.Time) *StatusHandler {
	return &StatusHandler{assistant: svc, started: started}
}

// Status handles GET /api/status.
func (h *StatusHandler) Status(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":           "operational",
		"uptime_seconds":   int64(time.Since(h.started).Seconds()),
		"requests_handled": h.assistant.RequestCount(),
		"features":         []string{"book_ride", "cancel_ride", "update_ride", "list_rides", "schedule_recurring"},
	})
}

// README: Command handlers for free-text processing and recurring schedules.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartride/internal/modules/assistant"
)

// commandTimeout bounds one command end to end, including both provider
// feeds and the AI call.
const commandTimeout = 30 * time.Second

type CommandHandler struct {
	assistant *assistant.Service
}

func NewCommandHandler(svc *assistant.Service) *CommandHandler {
	return &CommandHandler{assistant: svc}
}

type processCommandReq struct {
	Command     string                `json:"command"`
	UserContext assistant.UserContext `json:"user_context"`
}

// Process handles POST /api/process-command. Failed commands still return
// 200: the outcome is carried in the ActionResult body, and non-2xx is
// reserved for transport-level problems.
func (h *CommandHandler) Process(c *gin.Context) {
	var req processCommandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		writeError(c, http.StatusBadRequest, "missing command")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), commandTimeout)
	defer cancel()

	result := h.assistant.ProcessCommand(ctx, req.Command, req.UserContext)
	writeJSON(c, http.StatusOK, result)
}

type scheduleRecurringReq struct {
	Description string `json:"description"`
}

// ScheduleRecurring handles POST /api/schedule-recurring.
func (h *CommandHandler) ScheduleRecurring(c *gin.Context) {
	var req scheduleRecurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(c, http.StatusBadRequest, "missing description")
		return
	}

	writeJSON(c, http.StatusOK, assistant.PlanRecurring(req.Description))
}

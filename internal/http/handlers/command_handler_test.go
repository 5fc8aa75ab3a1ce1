// README: Handler tests for the command-processing API.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"smartride/internal/http/handlers"
	"smartride/internal/modules/assistant"
	"smartride/internal/modules/rides"
)

// stubComparer is a test double for assistant.RideComparer.
type stubComparer struct {
	result *rides.CompareResult
	err    error
}

func (s *stubComparer) Compare(_ context.Context, _ rides.CompareRequest) (*rides.CompareResult, error) {
	return s.result, s.err
}

func buildTestRouter(comparer assistant.RideComparer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := assistant.NewService(comparer, slog.New(slog.DiscardHandler))
	r := gin.New()
	h := handlers.NewCommandHandler(svc)
	r.POST("/api/process-command", h.Process)
	r.POST("/api/schedule-recurring", h.ScheduleRecurring)
	return r
}

func doRequest(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessCommand_Book(t *testing.T) {
	comparer := &stubComparer{result: &rides.CompareResult{
		Analysis: "RECOMMENDED_SERVICE: Uber\nRECOMMENDED_TYPE: UberPool\nREASON: cheapest",
		AllOptions: []rides.Option{
			{Service: "Uber", Type: "UberX", Price: 18.50, ETA: 4},
			{Service: "Uber", Type: "UberPool", Price: 12.95, ETA: 7},
		},
		Metrics: rides.Metrics{TotalOptions: 2, FilteredOptions: 2, PotentialSavings: 5.55},
	}}
	r := buildTestRouter(comparer)

	w := doRequest(r, "/api/process-command", map[string]any{
		"command":      "book ride to office",
		"user_context": map[string]any{"selected_date": 12},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result assistant.ActionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.Action != assistant.ActionBookRide {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Ride == nil || result.Ride.Type != "UberPool" {
		t.Errorf("ride = %+v", result.Ride)
	}
}

// TestProcessCommand_FailureStays200 verifies failed commands are reported in
// the body, not via HTTP status.
func TestProcessCommand_FailureStays200(t *testing.T) {
	r := buildTestRouter(&stubComparer{})

	w := doRequest(r, "/api/process-command", map[string]any{"command": "sing me a song"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result assistant.ActionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Success {
		t.Fatal("expected a failed result")
	}
	if !strings.Contains(result.Error, "Could not understand command") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestProcessCommand_MissingCommand(t *testing.T) {
	r := buildTestRouter(&stubComparer{})

	w := doRequest(r, "/api/process-command", map[string]any{"command": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestProcessCommand_InvalidJSON(t *testing.T) {
	r := buildTestRouter(&stubComparer{})

	req := httptest.NewRequest(http.MethodPost, "/api/process-command", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestScheduleRecurring(t *testing.T) {
	r := buildTestRouter(&stubComparer{})

	w := doRequest(r, "/api/schedule-recurring", map[string]any{
		"description": "book rides monday to friday at 8am to office",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan assistant.RecurringPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.EventsCreated != 5 {
		t.Errorf("events = %d, want 5", plan.EventsCreated)
	}
}

func TestScheduleRecurring_MissingDescription(t *testing.T) {
	r := buildTestRouter(&stubComparer{})

	w := doRequest(r, "/api/schedule-recurring", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

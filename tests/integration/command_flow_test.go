// README: End-to-end command flow tests against an in-process API with mock provider feeds.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httptransport "smartride/internal/http"
	"smartride/internal/modules/assistant"
	"smartride/internal/modules/rides"
	"smartride/internal/modules/weather"
)

// startFeed serves a fixed provider feed in the mock APIs' wire format.
func startFeed(t *testing.T, service string, ridesJSON string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Errorf("feed %s called without from/to: %s", service, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"service":"`+service+`","rides":[`+ridesJSON+`],"timestamp":1757660400}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func startAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uberSrv := startFeed(t, "Uber",
		`{"type":"UberX","price":18.50,"eta":14},{"type":"UberPool","price":12.95,"eta":10}`)
	lyftSrv := startFeed(t, "Lyft",
		`{"type":"Lyft","price":16.10,"eta":17},{"type":"Lyft Shared","price":10.47,"eta":12}`)

	logger := slog.New(slog.DiscardHandler)
	ridesSvc := rides.NewService(
		rides.NewProviderClient("uber", uberSrv.URL),
		rides.NewProviderClient("lyft", lyftSrv.URL),
		nil, // no LLM in integration tests, deterministic pick
		weather.NewService(),
		logger,
	)
	assistantSvc := assistant.NewService(ridesSvc, logger)

	api := httptest.NewServer(httptransport.NewRouter(assistantSvc, logger))
	t.Cleanup(api.Close)
	return api
}

func postCommand(t *testing.T, api *httptest.Server, command string, uc assistant.UserContext) assistant.ActionResult {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"command": command, "user_context": uc})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(api.URL+"/api/process-command", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("call /api/process-command: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var result assistant.ActionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return result
}

func TestCommandFlow_BookCancelList(t *testing.T) {
	api := startAPI(t)
	uc := assistant.UserContext{SelectedDate: 12}

	// Book. With no LLM and no analysis text the first option wins.
	booked := postCommand(t, api, "book ride to office at 9am", uc)
	if !booked.Success || booked.Ride == nil {
		t.Fatalf("book failed: %+v", booked)
	}
	if booked.Ride.Service != "Uber" || booked.Ride.Type != "UberX" {
		t.Errorf("booked %s %s, want the first option (UberX)", booked.Ride.Service, booked.Ride.Type)
	}
	if booked.Ride.Price != 18.50 {
		t.Errorf("price = %.2f", booked.Ride.Price)
	}
	if booked.Ride.Saved != 8.03 {
		t.Errorf("saved = %.2f, want max-min across all four options", booked.Ride.Saved)
	}
	if booked.Ride.Date != "Sep 12, 9am" {
		t.Errorf("date = %q", booked.Ride.Date)
	}
	uc.CurrentRides = append(uc.CurrentRides, *booked.Ride)

	// List.
	listed := postCommand(t, api, "show my rides", uc)
	if !listed.Success || len(listed.Rides) != 1 {
		t.Fatalf("list: %+v", listed)
	}
	if !strings.Contains(listed.Message, "💵 Total cost: $18.50") {
		t.Errorf("list message = %q", listed.Message)
	}

	// Cancel.
	cancelled := postCommand(t, api, "cancel my ride to the office", uc)
	if !cancelled.Success || cancelled.DeletedRide == nil {
		t.Fatalf("cancel: %+v", cancelled)
	}
	if cancelled.DeletedRide.ID != booked.Ride.ID {
		t.Errorf("cancelled ride %d, booked %d", cancelled.DeletedRide.ID, booked.Ride.ID)
	}
	if cancelled.DeletedRide.Refund != 13.88 {
		t.Errorf("refund = %.2f, want 75%% of 18.50", cancelled.DeletedRide.Refund)
	}
}

func TestCommandFlow_NoSharedPreference(t *testing.T) {
	api := startAPI(t)

	booked := postCommand(t, api, "book ride to office, no shared rides", assistant.UserContext{SelectedDate: 12})
	if !booked.Success || booked.Ride == nil {
		t.Fatalf("book failed: %+v", booked)
	}
	lowered := strings.ToLower(booked.Ride.Type)
	if strings.Contains(lowered, "pool") || strings.Contains(lowered, "shared") {
		t.Errorf("booked a shared ride despite preference: %s", booked.Ride.Type)
	}
}

func TestCommandFlow_TomorrowCarriesWeather(t *testing.T) {
	api := startAPI(t)

	booked := postCommand(t, api, "book ride to office tomorrow", assistant.UserContext{SelectedDate: 12})
	if !booked.Success || booked.Ride == nil {
		t.Fatalf("book failed: %+v", booked)
	}
	if booked.Ride.Date != "Sep 13, 9:00 AM" {
		t.Errorf("date = %q", booked.Ride.Date)
	}
	if !strings.Contains(booked.Message, "🌤️") {
		t.Errorf("message carries no weather note: %q", booked.Message)
	}
}

func TestCommandFlow_ProviderDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.DiscardHandler)

	downSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(downSrv.Close)

	ridesSvc := rides.NewService(
		rides.NewProviderClient("uber", downSrv.URL),
		rides.NewProviderClient("lyft", downSrv.URL),
		nil,
		weather.NewService(),
		logger,
	)
	api := httptest.NewServer(httptransport.NewRouter(assistant.NewService(ridesSvc, logger), logger))
	t.Cleanup(api.Close)

	result := postCommand(t, api, "book ride to office", assistant.UserContext{})
	if result.Success {
		t.Fatal("expected failure when both feeds are down")
	}
	if !strings.Contains(result.Error, "failed to fetch ride data") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestCommandFlow_ScheduleRecurring(t *testing.T) {
	api := startAPI(t)

	payload := []byte(`{"description":"book rides monday to friday at 8am to office"}`)
	resp, err := http.Post(api.URL+"/api/schedule-recurring", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("call /api/schedule-recurring: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var plan assistant.RecurringPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.EventsCreated != 5 {
		t.Errorf("events = %d, want 5", plan.EventsCreated)
	}
}

func TestCommandFlow_HealthAndStatus(t *testing.T) {
	api := startAPI(t)

	for _, path := range []string{"/api/health", "/api/status", "/metrics"} {
		resp, err := http.Get(api.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

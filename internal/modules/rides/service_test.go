package rides

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smartride/internal/ai"
	"smartride/internal/modules/weather"
)

// stubSource returns canned options or a canned error.
type stubSource struct {
	options []Option
	err     error
}

func (s *stubSource) FetchRides(_ context.Context, _, _ string) ([]Option, error) {
	return s.options, s.err
}

// stubRecommender records the request it saw and returns canned text.
type stubRecommender struct {
	text string
	err  error
	seen *ai.RecommendationRequest
}

func (s *stubRecommender) Recommend(_ context.Context, req ai.RecommendationRequest) (string, error) {
	s.seen = &req
	return s.text, s.err
}

// stubForecaster always predicts heavy rain.
type stubForecaster struct{}

func (stubForecaster) Forecast() weather.Forecast {
	return weather.Forecast{WillRain: true, RainChance: 85, Condition: "Heavy Rain", TempF: 65}
}

func (stubForecaster) BookingAdvice(f weather.Forecast) (bool, string) {
	return true, "Weather Alert: " + f.Condition
}

func uberFeed() *stubSource {
	return &stubSource{options: []Option{
		{Service: "Uber", Type: "UberX", Price: 18.50, ETA: 15},
		{Service: "Uber", Type: "UberPool", Price: 12.95, ETA: 10},
	}}
}

func lyftFeed() *stubSource {
	return &stubSource{options: []Option{
		{Service: "Lyft", Type: "Lyft", Price: 16.10, ETA: 18},
		{Service: "Lyft", Type: "Lyft Shared", Price: 10.47, ETA: 12},
	}}
}

func TestCompareMergesBothProviders(t *testing.T) {
	svc := NewService(uberFeed(), lyftFeed(), nil, nil, nil)
	res, err := svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.AllOptions) != 4 {
		t.Fatalf("expected 4 options, got %d", len(res.AllOptions))
	}
	if res.Route != "Home → Office" {
		t.Errorf("route = %q", res.Route)
	}
	// Uber options come first, preserving feed order.
	if res.AllOptions[0].Type != "UberX" || res.AllOptions[3].Type != "Lyft Shared" {
		t.Errorf("option order not preserved: %+v", res.AllOptions)
	}
}

func TestComparePotentialSavings(t *testing.T) {
	svc := NewService(uberFeed(), lyftFeed(), nil, nil, nil)
	res, err := svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	// max 18.50, min 10.47
	if res.Metrics.PotentialSavings != 8.03 {
		t.Errorf("potential savings = %v, want 8.03", res.Metrics.PotentialSavings)
	}
	if res.Metrics.TotalOptions != 4 || res.Metrics.FilteredOptions != 4 {
		t.Errorf("metrics = %+v", res.Metrics)
	}
}

func TestCompareFiltersSharedRides(t *testing.T) {
	svc := NewService(uberFeed(), lyftFeed(), nil, nil, nil)
	res, err := svc.Compare(context.Background(), CompareRequest{
		FromLocation:    "Home",
		ToLocation:      "Office",
		UserPreferences: Preferences{NoSharedRides: true},
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.FilteredOptions) != 2 {
		t.Fatalf("expected 2 filtered options, got %d", len(res.FilteredOptions))
	}
	for _, opt := range res.FilteredOptions {
		lower := strings.ToLower(opt.Type)
		if strings.Contains(lower, "pool") || strings.Contains(lower, "shared") {
			t.Errorf("shared option survived the filter: %+v", opt)
		}
	}
	// AllOptions keeps the unfiltered set for savings math.
	if len(res.AllOptions) != 4 {
		t.Errorf("AllOptions shrank to %d", len(res.AllOptions))
	}
}

func TestCompareProviderFailureIsFatal(t *testing.T) {
	svc := NewService(uberFeed(), &stubSource{err: errors.New("connection refused")}, nil, nil, nil)
	_, err := svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office"})
	if !errors.Is(err, ErrProviderFetch) {
		t.Fatalf("expected ErrProviderFetch, got %v", err)
	}
}

func TestCompareRecommenderFailureIsNotFatal(t *testing.T) {
	rec := &stubRecommender{err: errors.New("model overloaded")}
	svc := NewService(uberFeed(), lyftFeed(), rec, nil, nil)
	res, err := svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Analysis != "" {
		t.Errorf("expected empty analysis after recommender failure, got %q", res.Analysis)
	}
}

func TestCompareRecommenderSeesFilteredOptions(t *testing.T) {
	rec := &stubRecommender{text: "RECOMMENDED_SERVICE: Uber\nRECOMMENDED_TYPE: UberX\nREASON: cheapest non-shared"}
	svc := NewService(uberFeed(), lyftFeed(), rec, nil, nil)
	res, err := svc.Compare(context.Background(), CompareRequest{
		FromLocation:    "Home",
		ToLocation:      "Office",
		UserPreferences: Preferences{NoSharedRides: true},
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if rec.seen == nil {
		t.Fatal("recommender was not called")
	}
	if len(rec.seen.Options) != 2 {
		t.Errorf("recommender saw %d options, want the 2 filtered ones", len(rec.seen.Options))
	}
	if !rec.seen.Preferences.NoSharedRides {
		t.Error("preferences not forwarded to the recommender")
	}
	if res.Analysis == "" {
		t.Error("analysis text dropped")
	}
}

func TestCompareWeatherAdviceOnlyWhenRequested(t *testing.T) {
	svc := NewService(uberFeed(), lyftFeed(), nil, stubForecaster{}, nil)

	res, err := svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.WeatherInfo != "" || res.ImmediateBooking {
		t.Errorf("weather consulted without CheckWeather: %+v", res)
	}

	res, err = svc.Compare(context.Background(), CompareRequest{FromLocation: "Home", ToLocation: "Office", CheckWeather: true})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !res.ImmediateBooking || !strings.Contains(res.WeatherInfo, "Weather Alert") {
		t.Errorf("expected heavy-rain advice, got %+v", res)
	}
}

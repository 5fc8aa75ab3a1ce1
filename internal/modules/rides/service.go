// README: Ride comparison service; merges provider feeds, applies preferences, asks the AI for a pick.
package rides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"smartride/internal/ai"
	"smartride/internal/modules/weather"
)

var ErrProviderFetch = errors.New("failed to fetch ride data from providers")

// Forecaster is the weather collaborator consulted for tomorrow bookings.
type Forecaster interface {
	Forecast() weather.Forecast
	BookingAdvice(weather.Forecast) (immediate bool, reason string)
}

type Service struct {
	uber        OptionSource
	lyft        OptionSource
	recommender ai.Recommender
	weather     Forecaster
	logger      *slog.Logger
}

// NewService wires the comparison service. recommender may be nil, in which
// case no analysis text is produced and the assistant falls back to its
// deterministic option selection.
func NewService(uber, lyft OptionSource, recommender ai.Recommender, forecaster Forecaster, logger *slog.Logger) *Service {
	return &Service{
		uber:        uber,
		lyft:        lyft,
		recommender: recommender,
		weather:     forecaster,
		logger:      logger,
	}
}

// Compare fetches options from both providers, filters them by the user's
// preferences, and attaches AI analysis plus weather advice. A recommender
// failure is non-fatal: the result simply carries no analysis text. A provider
// failure is fatal for the whole comparison.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	var weatherInfo string
	var immediate bool
	if req.CheckWeather && s.weather != nil {
		forecast := s.weather.Forecast()
		immediate, weatherInfo = s.weather.BookingAdvice(forecast)
	}

	uberOptions, err := s.uber.FetchRides(ctx, req.FromLocation, req.ToLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFetch, err)
	}
	lyftOptions, err := s.lyft.FetchRides(ctx, req.FromLocation, req.ToLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFetch, err)
	}

	allOptions := append(append([]Option{}, uberOptions...), lyftOptions...)

	filtered := allOptions
	if req.UserPreferences.NoSharedRides {
		filtered = filterShared(allOptions)
	}

	analysis := ""
	if s.recommender != nil {
		analysis, err = s.recommender.Recommend(ctx, recommendationRequest(req, filtered, weatherInfo))
		if err != nil {
			// The assistant can still pick an option deterministically.
			if s.logger != nil {
				s.logger.Warn("ai recommendation failed", "err", err)
			}
			analysis = ""
		}
	}

	return &CompareResult{
		Route:            fmt.Sprintf("%s → %s", req.FromLocation, req.ToLocation),
		Analysis:         analysis,
		AllOptions:       allOptions,
		FilteredOptions:  filtered,
		Metrics:          computeMetrics(allOptions, filtered),
		WeatherInfo:      weatherInfo,
		ImmediateBooking: immediate,
	}, nil
}

func filterShared(options []Option) []Option {
	kept := make([]Option, 0, len(options))
	for _, opt := range options {
		t := strings.ToLower(opt.Type)
		if strings.Contains(t, "shared") || strings.Contains(t, "pool") {
			continue
		}
		kept = append(kept, opt)
	}
	return kept
}

func computeMetrics(all, filtered []Option) Metrics {
	m := Metrics{
		TotalOptions:    len(all),
		FilteredOptions: len(filtered),
	}
	if len(all) == 0 {
		return m
	}
	minPrice, maxPrice := all[0].Price, all[0].Price
	for _, opt := range all[1:] {
		if opt.Price < minPrice {
			minPrice = opt.Price
		}
		if opt.Price > maxPrice {
			maxPrice = opt.Price
		}
	}
	m.PotentialSavings = math.Round((maxPrice-minPrice)*100) / 100
	return m
}

func recommendationRequest(req CompareRequest, options []Option, weatherInfo string) ai.RecommendationRequest {
	aiOptions := make([]ai.RideOption, 0, len(options))
	for _, opt := range options {
		aiOptions = append(aiOptions, ai.RideOption{
			Service: opt.Service,
			Type:    opt.Type,
			Price:   opt.Price,
			ETA:     opt.ETA,
		})
	}
	return ai.RecommendationRequest{
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Options:      aiOptions,
		Preferences: ai.Preferences{
			NoSharedRides: req.UserPreferences.NoSharedRides,
			PreferredTime: req.UserPreferences.PreferredTime,
		},
		UserMessage: req.UserMessage,
		WeatherInfo: weatherInfo,
	}
}

// README: Mock weather service; deterministic per-hour forecasts for demo bookings.
package weather

import (
	"fmt"
	"time"
)

// Forecast is one simulated weather reading.
type Forecast struct {
	WillRain   bool   `json:"will_rain"`
	RainChance int    `json:"rain_chance"`
	Condition  string `json:"condition"`
	TempF      int    `json:"temp"`
}

// rainThreshold is the rain chance (percent) above which a ride should be
// booked immediately to avoid surge pricing.
const rainThreshold = 30

// scenarios covers the realistic range of demo weather. The forecast cycles
// through them by hour so repeated calls within an hour agree.
var scenarios = []Forecast{
	{WillRain: true, RainChance: 85, Condition: "Heavy Rain", TempF: 65},
	{WillRain: true, RainChance: 70, Condition: "Light Rain", TempF: 68},
	{WillRain: false, RainChance: 15, Condition: "Partly Cloudy", TempF: 75},
	{WillRain: false, RainChance: 5, Condition: "Clear", TempF: 78},
	{WillRain: true, RainChance: 90, Condition: "Thunderstorm", TempF: 62},
}

type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceAt pins the clock, used by tests and the demo binary.
func NewServiceAt(now func() time.Time) *Service {
	return &Service{now: now}
}

// Forecast returns the simulated weather for the current hour.
func (s *Service) Forecast() Forecast {
	hour := s.now().Hour()
	return scenarios[hour%len(scenarios)]
}

// BookingAdvice decides whether a tomorrow booking should be placed
// immediately because of the weather, and explains why either way.
func (s *Service) BookingAdvice(f Forecast) (immediate bool, reason string) {
	if f.WillRain && f.RainChance > rainThreshold {
		return true, fmt.Sprintf("Weather Alert: %s expected (%d%% rain chance). Booking immediately to avoid surge pricing.", f.Condition, f.RainChance)
	}
	return false, fmt.Sprintf("Weather looks good: %s (%d%% rain chance). Will monitor prices until closer to ride time.", f.Condition, f.RainChance)
}

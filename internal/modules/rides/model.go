// README: Ride option and comparison request/result definitions.
package rides

// Option is one priced, timed offer from a provider for a given route.
// Options are ephemeral; they exist only for the duration of one booking request.
type Option struct {
	Service string  `json:"service"`
	Type    string  `json:"type"`
	Price   float64 `json:"price"`
	ETA     int     `json:"eta"`
}

// Preferences are the user preference slots that influence the comparison.
type Preferences struct {
	NoSharedRides bool   `json:"no_shared_rides"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

type CompareRequest struct {
	FromLocation    string
	ToLocation      string
	UserPreferences Preferences
	UserMessage     string
	TargetDate      int
	CheckWeather    bool
}

type Metrics struct {
	TotalOptions     int     `json:"total_options"`
	FilteredOptions  int     `json:"filtered_options"`
	PotentialSavings float64 `json:"potential_savings"`
}

type CompareResult struct {
	Route            string   `json:"route"`
	Analysis         string   `json:"ai_analysis"`
	AllOptions       []Option `json:"all_options"`
	FilteredOptions  []Option `json:"filtered_options"`
	Metrics          Metrics  `json:"metrics"`
	WeatherInfo      string   `json:"weather_info,omitempty"`
	ImmediateBooking bool     `json:"immediate_booking"`
}

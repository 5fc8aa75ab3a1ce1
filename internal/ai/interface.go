package ai

import (
	"context"
)

// Recommender defines the contract for the recommendation text collaborator.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// and for substituting deterministic stubs in tests.
type Recommender interface {
	// Recommend analyzes the ride options for one booking request and returns
	// free text that is expected, but not guaranteed, to follow the
	// RECOMMENDED_SERVICE / RECOMMENDED_TYPE / REASON template.
	Recommend(ctx context.Context, req RecommendationRequest) (string, error)
}

// Preferences mirrors the user preference slots relevant to the recommendation.
type Preferences struct {
	NoSharedRides bool   `json:"no_shared_rides"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

// RideOption is one priced offer shown to the model.
type RideOption struct {
	Service string  `json:"service"`
	Type    string  `json:"type"`
	Price   float64 `json:"price"`
	ETA     int     `json:"eta"`
}

// RecommendationRequest carries everything the prompt needs.
type RecommendationRequest struct {
	FromLocation string
	ToLocation   string
	Options      []RideOption
	Preferences  Preferences
	UserMessage  string
	WeatherInfo  string
}

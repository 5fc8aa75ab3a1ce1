package ai

import (
	"encoding/json"
	"fmt"
)

// buildPrompt constructs the instructions for the model. The EXACT response
// format matters: the assistant parses the RECOMMENDED_SERVICE and
// RECOMMENDED_TYPE markers back out of the reply.
func buildPrompt(req RecommendationRequest) string {
	prefsJSON, _ := json.Marshal(req.Preferences)
	optionsJSON, _ := json.MarshalIndent(req.Options, "", "  ")

	weatherContext := ""
	if req.WeatherInfo != "" {
		weatherContext = fmt.Sprintf("\nWeather context: %s", req.WeatherInfo)
	}

	return fmt.Sprintf(`You are a ride optimization expert. Analyze these ride options for %s to %s:

User request: %q
User preferences: %s
%s

Available options:
%s

Instructions:
1. If user preferences show no_shared_rides=true: Only consider UberX and Lyft (non-shared options)
2. If user allows shared rides (no_shared_rides=false): Prioritize UberPool and Lyft Shared for savings
3. Choose the best option considering: price (most important), ETA, weather impact
4. Always respond in this EXACT format:

RECOMMENDED_SERVICE: [Uber or Lyft]
RECOMMENDED_TYPE: [UberX or UberPool or Lyft or Lyft Shared]
REASON: [Brief explanation focusing on price savings and ETA]

Example response:
RECOMMENDED_SERVICE: Uber
RECOMMENDED_TYPE: UberPool
REASON: UberPool at $11.28 is $2.03 cheaper than Lyft Shared with same 18min ETA

Choose the cheapest option that meets user preferences. Be specific with service and type names.`,
		req.FromLocation, req.ToLocation, req.UserMessage, prefsJSON, weatherContext, optionsJSON)
}

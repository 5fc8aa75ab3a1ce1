// README: Reconciles freeform AI recommendation text against structured ride options.
package assistant

import (
	"strings"

	"smartride/internal/modules/rides"
)

const (
	markerService = "recommended_service:"
	markerType    = "recommended_type:"
	markerReason  = "reason:"
)

// ReconcileRecommendation maps recommendation text back to one of the
// structured options it was asked to choose among. The text is expected, but
// not guaranteed, to follow the RECOMMENDED_SERVICE / RECOMMENDED_TYPE
// template; progressively weaker strategies handle drift, ending at the
// cheapest option. Empty text short-circuits to the first option, which is a
// distinct fallback from the cheapest-price one and preserved intentionally.
// ok is false only when options is empty.
func ReconcileRecommendation(aiText string, options []rides.Option) (rides.Option, bool) {
	if len(options) == 0 {
		return rides.Option{}, false
	}
	if aiText == "" {
		return options[0], true
	}

	lower := strings.ToLower(aiText)

	// 1. Structured marker parse.
	service := markedService(lower)
	rideType := markedType(lower)
	if service != "" && rideType != "" {
		for _, opt := range options {
			if opt.Service == service && strings.ToLower(opt.Type) == rideType {
				return opt, true
			}
		}
	}

	// 2. Keyword fallback cascade over the full text.
	if strings.Contains(lower, "uberpool") || (strings.Contains(lower, "uber") && strings.Contains(lower, "pool")) {
		for _, opt := range options {
			if opt.Service == "Uber" && strings.Contains(strings.ToLower(opt.Type), "pool") {
				return opt, true
			}
		}
	}
	if strings.Contains(lower, "lyft shared") || (strings.Contains(lower, "lyft") && strings.Contains(lower, "shared")) {
		for _, opt := range options {
			if opt.Service == "Lyft" && strings.Contains(strings.ToLower(opt.Type), "shared") {
				return opt, true
			}
		}
	}
	if strings.Contains(lower, "uberx") || (strings.Contains(lower, "uber") && !strings.Contains(lower, "pool")) {
		for _, opt := range options {
			if opt.Service == "Uber" && !strings.Contains(strings.ToLower(opt.Type), "pool") {
				return opt, true
			}
		}
	}
	if strings.Contains(lower, "lyft") && !strings.Contains(lower, "shared") {
		for _, opt := range options {
			if opt.Service == "Lyft" && !strings.Contains(strings.ToLower(opt.Type), "shared") {
				return opt, true
			}
		}
	}

	// 3. Cheapest option, ties broken by original order.
	cheapest := options[0]
	for _, opt := range options[1:] {
		if opt.Price < cheapest.Price {
			cheapest = opt
		}
	}
	return cheapest, true
}

// markedService extracts the service between RECOMMENDED_SERVICE: and
// RECOMMENDED_TYPE:, mapped to its canonical name by containment.
func markedService(lower string) string {
	if !strings.Contains(lower, markerService) {
		return ""
	}
	part := strings.SplitN(lower, markerService, 2)[1]
	part = strings.TrimSpace(strings.SplitN(part, markerType, 2)[0])
	switch {
	case strings.Contains(part, "uber"):
		return "Uber"
	case strings.Contains(part, "lyft"):
		return "Lyft"
	}
	return ""
}

// markedType extracts the ride type between RECOMMENDED_TYPE: and REASON:.
func markedType(lower string) string {
	if !strings.Contains(lower, markerType) {
		return ""
	}
	part := strings.SplitN(lower, markerType, 2)[1]
	return strings.TrimSpace(strings.SplitN(part, markerReason, 2)[0])
}

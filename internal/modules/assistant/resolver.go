// README: Ride resolver: picks the ride a command most likely refers to.
package assistant

import "strings"

// timeTokens is the fixed token list used for bare time matching, in its
// historical priority order.
var timeTokens = []string{
	"5pm", "6pm", "7pm", "8pm", "9am", "10am", "11am", "12pm",
	"1pm", "2pm", "3pm", "4pm",
}

// ResolveRide picks the one ride the command most likely refers to.
// The cascade never reports "ambiguous": once the list is non-empty it always
// returns a best guess, trading precision for an always-actionable UX.
// ok is false only when rideList is empty.
func ResolveRide(command string, rideList []Ride) (Ride, bool) {
	if len(rideList) == 0 {
		return Ride{}, false
	}

	lower := strings.ToLower(command)

	// 1. Update commands name the target ride by its current time.
	if strings.Contains(lower, "update") || strings.Contains(lower, "change") {
		if idTime := ExtractIdentifierTime(command); idTime != "" {
			want := NormalizeTime(idTime)
			for _, r := range rideList {
				if NormalizeTime(r.Time) == want {
					return r, true
				}
			}
		}
	}

	// 2. Bare time tokens, matched by containment against the ride's time.
	for _, tok := range timeTokens {
		if !strings.Contains(lower, tok) {
			continue
		}
		pretty := strings.ReplaceAll(strings.ReplaceAll(tok, "pm", " PM"), "am", " AM")
		for _, r := range rideList {
			if strings.Contains(r.Time, pretty) {
				return r, true
			}
		}
	}

	// 3. Destination.
	if strings.Contains(lower, "office") {
		for _, r := range rideList {
			if strings.Contains(strings.ToLower(r.To), "office") {
				return r, true
			}
		}
	}
	if strings.Contains(lower, "home") {
		for _, r := range rideList {
			if strings.Contains(strings.ToLower(r.To), "home") {
				return r, true
			}
		}
	}

	// 4. Service.
	if strings.Contains(lower, "uber") {
		for _, r := range rideList {
			if strings.Contains(strings.ToLower(r.Service), "uber") {
				return r, true
			}
		}
	}
	if strings.Contains(lower, "lyft") {
		for _, r := range rideList {
			if strings.Contains(strings.ToLower(r.Service), "lyft") {
				return r, true
			}
		}
	}

	// 5. Fall back to the most recently appended ride.
	return rideList[len(rideList)-1], true
}

// README: Recurring ride planner for "every weekday" style requests.
package assistant

import (
	"fmt"
	"strings"
)

// RecurringEvent is one planned ride in a recurring schedule.
type RecurringEvent struct {
	Date        int    `json:"date"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Destination string `json:"destination"`
	Type        string `json:"type"`
}

type RecurringPlan struct {
	EventsCreated int              `json:"events_created"`
	Schedule      []RecurringEvent `json:"schedule"`
	Message       string           `json:"message"`
}

// demoWeekdayDates is the demo calendar's example work week (Sep 16–20).
var demoWeekdayDates = [5]int{16, 17, 18, 19, 20}

var weekdayNames = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// PlanRecurring parses a recurring schedule description such as
// "book rides monday to friday at 9am to office" into concrete events.
// Only the weekday pattern is recognized; anything else plans zero events.
func PlanRecurring(description string) RecurringPlan {
	lower := strings.ToLower(description)

	var events []RecurringEvent
	if strings.Contains(lower, "monday to friday") || strings.Contains(lower, "weekday") {
		timePart := "9:00 AM"
		if idx := strings.Index(description, "at"); idx >= 0 {
			fields := strings.Fields(strings.TrimSpace(description[idx+len("at"):]))
			if len(fields) > 0 && strings.ContainsAny(fields[0], "0123456789") {
				timePart = fields[0]
				lowerTime := strings.ToLower(timePart)
				if !strings.Contains(lowerTime, "am") && !strings.Contains(lowerTime, "pm") {
					timePart += " AM"
				}
			}
		}

		destination := "Work"
		if strings.Contains(lower, "office") {
			destination = "Office"
		}

		for i, day := range weekdayNames {
			events = append(events, RecurringEvent{
				Date:        demoWeekdayDates[i],
				Day:         day,
				Time:        timePart,
				Destination: destination,
				Type:        "recurring_ride",
			})
		}
	}

	message := "Scheduled 0 recurring rides to destination at time"
	if len(events) > 0 {
		message = fmt.Sprintf("Scheduled %d recurring rides to %s at %s",
			len(events), events[0].Destination, events[0].Time)
	}

	return RecurringPlan{
		EventsCreated: len(events),
		Schedule:      events,
		Message:       message,
	}
}

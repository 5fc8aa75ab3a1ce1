// README: Offline demo; walks the assistant through a scripted conversation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"smartride/internal/logging"
	"smartride/internal/modules/assistant"
	"smartride/internal/modules/rides"
	"smartride/internal/modules/weather"
)

// staticSource serves a fixed option list so the demo needs no running feeds.
type staticSource struct {
	options []rides.Option
}

func (s staticSource) FetchRides(_ context.Context, _, _ string) ([]rides.Option, error) {
	return s.options, nil
}

func main() {
	logger := logging.NewLogger("warn")

	uber := staticSource{options: []rides.Option{
		{Service: "Uber", Type: "UberX", Price: 18.50, ETA: 14},
		{Service: "Uber", Type: "UberPool", Price: 12.95, ETA: 10},
	}}
	lyft := staticSource{options: []rides.Option{
		{Service: "Lyft", Type: "Lyft", Price: 16.10, ETA: 17},
		{Service: "Lyft", Type: "Lyft Shared", Price: 10.47, ETA: 12},
	}}

	ridesSvc := rides.NewService(uber, lyft, nil, weather.NewService(), logger)
	assistantSvc := assistant.NewService(ridesSvc, logger)

	uc := assistant.UserContext{SelectedDate: 12}
	commands := []string{
		"book ride to office tomorrow at 9am",
		"book ride home at 6pm, no shared rides",
		"show my rides",
		"change my 6pm ride to 7pm",
		"cancel my ride to the office",
		"show my rides",
	}

	for _, command := range commands {
		fmt.Printf("\n> %s\n", command)
		result := assistantSvc.ProcessCommand(context.Background(), command, uc)
		if !result.Success {
			fmt.Println(result.Error)
			continue
		}
		fmt.Println(result.Message)
		uc = apply(uc, result)
	}

	plan := assistant.PlanRecurring("book rides monday to friday at 8am to office")
	fmt.Printf("\n> schedule recurring\n%s\n", plan.Message)

	if assistantSvc.RequestCount() != int64(len(commands)) {
		slog.Error("request count mismatch")
		os.Exit(1)
	}
}

// apply folds an ActionResult back into the user context, the way a real
// client would maintain its ride list.
func apply(uc assistant.UserContext, result assistant.ActionResult) assistant.UserContext {
	switch {
	case result.Ride != nil:
		uc.CurrentRides = append(uc.CurrentRides, *result.Ride)
	case result.DeletedRide != nil:
		kept := uc.CurrentRides[:0]
		for _, r := range uc.CurrentRides {
			if r.ID != result.DeletedRide.ID {
				kept = append(kept, r)
			}
		}
		uc.CurrentRides = kept
	case result.UpdatedRide != nil:
		for i, r := range uc.CurrentRides {
			if r.ID != result.UpdatedRide.ID {
				continue
			}
			if result.UpdatedRide.Updates.Time != "" {
				uc.CurrentRides[i].Time = result.UpdatedRide.Updates.Time
			}
			if result.UpdatedRide.Updates.Destination != "" {
				uc.CurrentRides[i].To = result.UpdatedRide.Updates.Destination
			}
		}
	}
	return uc
}

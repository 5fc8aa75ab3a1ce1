// README: Command processor; orchestrates classifier, extractors, resolver, and reconciler.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"smartride/internal/modules/rides"
	"smartride/internal/observability"
)

// RideComparer is the pricing+recommendation collaborator port. The real
// implementation lives in the rides module; tests substitute deterministic
// stubs.
type RideComparer interface {
	Compare(ctx context.Context, req rides.CompareRequest) (*rides.CompareResult, error)
}

type Service struct {
	comparer RideComparer
	logger   *slog.Logger
	now      func() time.Time
	requests atomic.Int64
	lastID   atomic.Int64
}

func NewService(comparer RideComparer, logger *slog.Logger) *Service {
	return &Service{
		comparer: comparer,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestCount reports how many commands this process has handled. It exists
// for status reporting only; the value is not critical.
func (s *Service) RequestCount() int64 {
	return s.requests.Load()
}

// ProcessCommand turns one free-text command plus the caller's context into an
// ActionResult. All errors are local to the request: a panic anywhere below is
// converted to a failed result so the service stays up for the next command.
func (s *Service) ProcessCommand(ctx context.Context, command string, uc UserContext) (result ActionResult) {
	s.requests.Add(1)
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.Error("command processing panicked", "command", command, "panic", r)
			}
			result = failure(fmt.Sprintf("command processing failed: %v", r))
		}
		observability.CommandLatency.Observe(time.Since(start).Seconds())
		if result.Success {
			observability.CommandsTotal.WithLabelValues(string(result.Action)).Inc()
		} else {
			observability.CommandsTotal.WithLabelValues(string(ActionNone)).Inc()
			observability.CommandFailures.Inc()
		}
	}()

	switch ClassifyIntent(command) {
	case IntentBook:
		return s.processBook(ctx, command, uc)
	case IntentCancel:
		return s.processCancel(command, uc)
	case IntentUpdate:
		return s.processUpdate(command, uc)
	case IntentList:
		return s.processList(uc)
	default:
		return failure(`Could not understand command. Try "book ride to office" or "cancel my ride"`)
	}
}

func (s *Service) processBook(ctx context.Context, command string, uc UserContext) ActionResult {
	from, to := ExtractLocations(command)
	displayTime := ExtractTime(command)
	targetDate := ExtractDate(command, uc.SelectedDate)
	prefs := ExtractPreferences(command)
	checkWeather := strings.Contains(strings.ToLower(command), "tomorrow")

	if s.logger != nil {
		s.logger.Info("booking", "from", from, "to", to, "date", targetDate, "check_weather", checkWeather)
	}

	res, err := s.comparer.Compare(ctx, rides.CompareRequest{
		FromLocation:    from,
		ToLocation:      to,
		UserPreferences: prefs,
		UserMessage:     command,
		TargetDate:      targetDate,
		CheckWeather:    checkWeather,
	})
	if err != nil {
		observability.CollaboratorFailures.Inc()
		return failure(err.Error())
	}

	best, ok := ReconcileRecommendation(res.Analysis, res.AllOptions)
	if !ok {
		return failure("No suitable ride options found")
	}

	if displayTime == "" {
		displayTime = "9:00 AM"
	}
	ride := Ride{
		ID:      s.nextRideID(),
		From:    from,
		To:      to,
		Time:    displayTime,
		Service: best.Service,
		Type:    best.Type,
		Price:   best.Price,
		Date:    fmt.Sprintf("Sep %d, %s", targetDate, displayTime),
		Saved:   res.Metrics.PotentialSavings,
	}

	message := fmt.Sprintf("📊 Found %d options\n%s\n✅ Booked %s %s - $%.2f",
		len(res.AllOptions), res.Analysis, best.Service, best.Type, best.Price)
	if res.WeatherInfo != "" {
		message += "\n🌤️ " + res.WeatherInfo
	}

	return ActionResult{
		Success:      true,
		Action:       ActionBookRide,
		Message:      message,
		Ride:         &ride,
		Notification: fmt.Sprintf("✅ Booked %s %s - Saved $%.2f", best.Service, best.Type, ride.Saved),
	}
}

func (s *Service) processCancel(command string, uc UserContext) ActionResult {
	if len(uc.CurrentRides) == 0 {
		return ActionResult{
			Success: true,
			Action:  ActionListRides,
			Message: "📋 You have no booked rides to cancel.",
		}
	}

	ride, _ := ResolveRide(command, uc.CurrentRides)
	refund := round2(ride.Price * 0.75)

	return ActionResult{
		Success: true,
		Action:  ActionDeleteRide,
		Message: fmt.Sprintf("❌ Cancelled %s ride from %s to %s\n💰 Refund: $%.2f refunded 75%% of the original price by charging a 25%% cancellation fee",
			ride.Service, ride.From, ride.To, refund),
		DeletedRide:  &DeletedRide{ID: ride.ID, Refund: refund},
		Notification: fmt.Sprintf("❌ Ride cancelled - $%.2f refund processed", refund),
	}
}

func (s *Service) processUpdate(command string, uc UserContext) ActionResult {
	if len(uc.CurrentRides) == 0 {
		return ActionResult{
			Success: true,
			Action:  ActionListRides,
			Message: "📋 You have no booked rides to update.",
		}
	}

	ride, _ := ResolveRide(command, uc.CurrentRides)

	var updates UpdateSpec
	var message string
	if newTime := ExtractTargetTime(command); newTime != "" {
		updates = UpdateSpec{Time: newTime}
		message = fmt.Sprintf("✏️ Updated %s ride from %s to %s - time changed to %s",
			ride.Service, ride.From, ride.To, newTime)
	} else if dest := ExtractDestination(command); dest != "" {
		updates = UpdateSpec{Destination: dest}
		message = fmt.Sprintf("✏️ Updated %s ride destination to %s", ride.Service, dest)
	} else {
		return failure(`🤔 What would you like to update? (e.g., "change my ride time to 10am" or "change destination to airport")`)
	}

	return ActionResult{
		Success:      true,
		Action:       ActionUpdateRide,
		Message:      message,
		UpdatedRide:  &UpdatedRide{ID: ride.ID, Updates: updates},
		Notification: "✏️ Ride updated successfully",
	}
}

func (s *Service) processList(uc UserContext) ActionResult {
	if len(uc.CurrentRides) == 0 {
		return ActionResult{
			Success: true,
			Action:  ActionListRides,
			Message: "📋 You have no booked rides currently.\n\n💡 Try saying \"book ride to office\" to schedule your first ride!",
		}
	}

	var totalCost, totalSaved float64
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Your booked rides (%d total):\n\n", len(uc.CurrentRides))
	for _, r := range uc.CurrentRides {
		totalCost += r.Price
		totalSaved += r.Saved
		fmt.Fprintf(&sb, "🚗 %s → %s\n", r.From, r.To)
		fmt.Fprintf(&sb, "   📅 %s | 💰 $%.2f | 🚙 %s\n\n", r.Date, r.Price, r.Service)
	}
	fmt.Fprintf(&sb, "💵 Total cost: $%.2f\n💰 Total saved: $%.2f", totalCost, totalSaved)

	return ActionResult{
		Success: true,
		Action:  ActionListRides,
		Message: sb.String(),
		Rides:   uc.CurrentRides,
	}
}

// nextRideID derives an id from the current timestamp. Bookings landing in
// the same millisecond still get distinct ids.
func (s *Service) nextRideID() int64 {
	for {
		id := s.now().UnixMilli()
		last := s.lastID.Load()
		if id <= last {
			id = last + 1
		}
		if s.lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}

func failure(msg string) ActionResult {
	return ActionResult{Success: false, Action: ActionNone, Error: msg}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

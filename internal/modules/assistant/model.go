// README: Assistant data model: intents, rides, user context, and the result envelope.
package assistant

// Intent is the coarse action category a command maps to.
type Intent string

const (
	IntentBook    Intent = "book"
	IntentCancel  Intent = "cancel"
	IntentUpdate  Intent = "update"
	IntentList    Intent = "list"
	IntentUnknown Intent = "unknown"
)

// Action names the concrete action a processed command resulted in.
type Action string

const (
	ActionBookRide   Action = "book_ride"
	ActionDeleteRide Action = "delete_ride"
	ActionUpdateRide Action = "update_ride"
	ActionListRides  Action = "list_rides"
	ActionNone       Action = "none"
)

// Ride is one booked ride as the caller tracks it. The assistant only reads
// rides; mutations are described in the result and applied by the caller.
type Ride struct {
	ID      int64   `json:"id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Type    string  `json:"type,omitempty"`
	Price   float64 `json:"price"`
	Date    string  `json:"date"`
	Saved   float64 `json:"saved"`
}

// UserContext is supplied fresh by the caller on every request; the assistant
// never caches it.
type UserContext struct {
	CurrentRides []Ride `json:"current_rides"`
	SelectedDate int    `json:"selected_date"`
}

// UpdateSpec describes the mutation an update command asks for. Exactly one
// field is set.
type UpdateSpec struct {
	Time        string `json:"time,omitempty"`
	Destination string `json:"destination,omitempty"`
}

type DeletedRide struct {
	ID     int64   `json:"id"`
	Refund float64 `json:"refund"`
}

type UpdatedRide struct {
	ID      int64      `json:"id"`
	Updates UpdateSpec `json:"updates"`
}

// ActionResult is the sole return contract of the command processor.
// Exactly one of these holds: success=false with Error set, or success=true
// with Action and Message set.
type ActionResult struct {
	Success      bool         `json:"success"`
	Action       Action       `json:"action,omitempty"`
	Message      string       `json:"message,omitempty"`
	Ride         *Ride        `json:"ride_data,omitempty"`
	DeletedRide  *DeletedRide `json:"deleted_ride,omitempty"`
	UpdatedRide  *UpdatedRide `json:"updated_ride,omitempty"`
	Rides        []Ride       `json:"rides,omitempty"`
	Notification string       `json:"notification,omitempty"`
	Error        string       `json:"error,omitempty"`
}

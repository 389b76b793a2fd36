package booking

import "github.com/korefit/studio-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBooked, StatusCancelled, StatusCompleted, StatusMissed:
		return Status(s), nil
	default:
		return "", httperr.Validation("invalid_status", "Unknown booking status: "+s)
	}
}

// allowedTransitions is the base table. Transitions INTO booked are
// handled separately: re-confirmation is permitted from any state.
var allowedTransitions = map[Status]map[Status]bool{
	StatusBooked:    {StatusCompleted: true, StatusCancelled: true, StatusMissed: true},
	StatusCancelled: {StatusBooked: true},
	StatusCompleted: {},
	StatusMissed:    {},
}

// CanTransition reports whether the status change is legal. Moving to
// booked always is: it models staff re-confirming a booking after a late
// payment clears, including the booked -> booked no-op.
func CanTransition(from, to Status) bool {
	if to == StatusBooked {
		return true
	}
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

func IsTerminal(s Status) bool {
	m, ok := allowedTransitions[s]
	return ok && len(m) == 0
}

func InitialStatus(paymentMethod, paymentReference string) Status {
	if IsInstantConfirm(paymentMethod, paymentReference) {
		return StatusCompleted
	}
	return StatusBooked
}

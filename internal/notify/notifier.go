package notify

import (
	"context"
	"log"
)

type Notifier interface {
	TrainerBookingCreated(ctx context.Context, ev BookingCreatedEvent) error
}

// LogNotifier is the fallback when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) TrainerBookingCreated(_ context.Context, ev BookingCreatedEvent) error {
	log.Printf(
		"notify: trainer %d has a new booking %s for %q at %s",
		ev.TrainerID, ev.Reference, ev.SessionName, ev.StartTime.Format("2006-01-02 15:04"),
	)
	return nil
}

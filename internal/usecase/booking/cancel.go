package booking

import (
	"context"
	"time"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/timezone"
)

// ClientCancellationWindow is how far ahead of the slot start a client
// can still cancel on their own. Staff bypass it.
const ClientCancellationWindow = 24 * time.Hour

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()

	if !actor.IsStaff() {
		if b.UserID == nil || *b.UserID != actor.ID {
			return nil, httperr.ForbiddenErr("not_booking_owner", "You can only cancel your own bookings.")
		}
		if b.TimeSlot.StartTime.Sub(now) < ClientCancellationWindow {
			return nil, httperr.ConflictErr("cancellation_window_closed", "Bookings can only be cancelled 24 hrs prior to the class.")
		}
	}

	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	// Status flip and occupancy decrement commit together.
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if b.SessionGroupID != nil {
			return tx.ReleaseGroupSlot(ctx, *b.SessionGroupID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

package booking

import (
	"context"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
)

// DeleteBooking is the admin hard-delete. Removing a live reservation
// also gives its group slot back, so a delete can never strand occupancy
// the way a bare row removal would.
type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
) error {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if b.Status == string(domain.StatusBooked) && b.SessionGroupID != nil {
			if err := tx.ReleaseGroupSlot(ctx, *b.SessionGroupID); err != nil {
				return err
			}
		}
		return tx.DeleteBooking(ctx, b)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}

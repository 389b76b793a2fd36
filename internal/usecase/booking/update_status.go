package booking

import (
	"context"
	"log"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/loyalty"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/timezone"
)

type UpdateBookingStatus struct {
	repo   domain.Repository
	ledger loyalty.Ledger
	audit  *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	ledger loyalty.Ledger,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		ledger: ledger,
		audit:  audit,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
	target domain.Status,
	paymentRef string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)
	now := timezone.Now()

	if err := domain.ApplyStatus(b, target, paymentRef, now); err != nil {
		return nil, err
	}

	// A cancellation through the state machine gives the group slot
	// back just like the cancellation path does, inside the same
	// transaction as the status flip.
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if target == domain.StatusCancelled && from != domain.StatusCancelled && b.SessionGroupID != nil {
			return tx.ReleaseGroupSlot(ctx, *b.SessionGroupID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Completion bonus fires on the transition only, so a repeat call
	// (rejected as an illegal transition) can never double-award.
	if target == domain.StatusCompleted && from != domain.StatusCompleted {
		uc.awardCompletionPoints(ctx, b)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"from": string(from), "to": string(target)},
	})

	return b, nil
}

// awardCompletionPoints is best-effort: the status change has already
// committed, a ledger hiccup must not undo it.
func (uc *UpdateBookingStatus) awardCompletionPoints(ctx context.Context, b *models.Booking) {
	if b.UserID == nil {
		return
	}
	if err := uc.ledger.Award(ctx, *b.UserID, loyalty.PointsBookingCompleted, "booking_completed"); err != nil {
		log.Printf("loyalty: failed to award points for booking %d: %v", b.ID, err)
	}
}

package booking

import (
	"context"
	"log"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/loyalty"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/timezone"
)

// ConfirmPayment is the lightweight verification path: match the stored
// payment reference against the confirmation markers and auto-complete
// the booking when it passes. Staff who need finer control use the
// status state machine instead.
type ConfirmPayment struct {
	repo   domain.Repository
	ledger loyalty.Ledger
	audit  *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	ledger loyalty.Ledger,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:   repo,
		ledger: ledger,
		audit:  audit,
	}
}

type ConfirmPaymentResult struct {
	Booking  *models.Booking `json:"booking"`
	Verified bool            `json:"verified"`
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	bookingID uint,
	paymentRef string,
) (*ConfirmPaymentResult, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if paymentRef != "" {
		b.PaymentReference = paymentRef
	}
	if b.PaymentReference == "" {
		return nil, httperr.Validation("payment_reference_required", "No payment reference to verify.")
	}

	verified := domain.MatchesConfirmationMarker(b.PaymentReference)

	wasCompleted := domain.Status(b.Status) == domain.StatusCompleted
	if verified && !wasCompleted {
		now := timezone.Now()
		b.Status = string(domain.StatusCompleted)
		b.CompletedAt = &now
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if verified && !wasCompleted && b.UserID != nil {
		if err := uc.ledger.Award(ctx, *b.UserID, loyalty.PointsBookingCompleted, "payment_confirmed"); err != nil {
			log.Printf("loyalty: failed to award points for booking %d: %v", b.ID, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   b.UserID,
		Action:   "booking_payment_checked",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]bool{"verified": verified},
	})

	return &ConfirmPaymentResult{Booking: b, Verified: verified}, nil
}

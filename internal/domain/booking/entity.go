package booking

import (
	"time"

	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves a booking to the target status, enforcing the
// transition table and the payment-reference guard for confirmation.
// paymentRef, when non-empty, is stored on the booking before the guard
// runs.
func ApplyStatus(b *models.Booking, target Status, paymentRef string, now time.Time) error {
	from := Status(b.Status)

	if !CanTransition(from, target) {
		return httperr.InvalidTransition(string(from), string(target))
	}

	if paymentRef != "" {
		b.PaymentReference = paymentRef
	}

	if target == StatusBooked && b.PaymentReference == "" {
		return httperr.Validation("payment_reference_required", "A payment reference is required to confirm a booking.")
	}

	b.Status = string(target)
	switch target {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	return ApplyStatus(b, StatusCancelled, "", now)
}

func Complete(b *models.Booking, now time.Time) error {
	return ApplyStatus(b, StatusCompleted, "", now)
}

// ValidateGuest checks that an anonymous booking carries enough contact
// detail to hold the spot.
func ValidateGuest(userID *uint, guestName, guestPhone string) error {
	if userID != nil {
		return nil
	}
	if guestName == "" || guestPhone == "" {
		return httperr.Validation("guest_fields_required", "Guest bookings need a name and a phone number.")
	}
	return nil
}

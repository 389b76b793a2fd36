package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/notify"
	"github.com/korefit/studio-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TimeSlotID uint

	// Registered client, or guest contact fields.
	UserID     *uint
	GuestName  string
	GuestPhone string
	GuestEmail string

	PaymentMethod    string
	PaymentReference string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Guest vs registered validation
	// --------------------------------------------------
	if err := domain.ValidateGuest(in.UserID, in.GuestName, in.GuestPhone); err != nil {
		return nil, err
	}

	guestPhone := ""
	if in.UserID == nil {
		if guestPhone = validators.NormalizePhone(in.GuestPhone); guestPhone == "" {
			guestPhone = in.GuestPhone
		}
	}

	// --------------------------------------------------
	// 2. Resolve slot -> schedule -> session
	// --------------------------------------------------
	slot, err := uc.repo.GetTimeSlot(ctx, in.TimeSlotID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Resolve the user, if any
	// --------------------------------------------------
	var user *models.User
	if in.UserID != nil {
		if user, err = uc.repo.GetUser(ctx, *in.UserID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Effective capacity for the group
	// --------------------------------------------------
	capacity := domain.EffectiveCapacity(slot.Session.Category, slot.Session.Capacity)

	// --------------------------------------------------
	// 5. Allocate a group slot and persist, atomically.
	// The group increment and the booking row commit
	// together or not at all.
	// --------------------------------------------------
	var created *models.Booking

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		group, err := tx.AllocateGroup(ctx, slot.ScheduleID, capacity)
		if err != nil {
			return err
		}

		b := &models.Booking{
			Reference:  uuid.NewString(),
			TimeSlotID: slot.ID,
			ScheduleID: slot.ScheduleID,

			SessionGroupID: &group.ID,

			UserID:     in.UserID,
			GuestName:  in.GuestName,
			GuestPhone: guestPhone,
			GuestEmail: in.GuestEmail,

			Status: string(domain.InitialStatus(in.PaymentMethod, in.PaymentReference)),

			PaymentMethod:    in.PaymentMethod,
			PaymentReference: in.PaymentReference,
			Notes:            in.Notes,
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Post-commit side effects, best-effort
	// --------------------------------------------------
	uc.notify.Dispatch(notify.BookingCreatedEvent{
		BookingID:   created.ID,
		Reference:   created.Reference,
		SessionID:   slot.SessionID,
		SessionName: slot.Session.Name,
		TrainerID:   slot.Session.TrainerID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		ClientName:  clientName(user, in),
		Status:      created.Status,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &created.ID,
	})

	return created, nil
}

func clientName(user *models.User, in CreateBookingInput) string {
	if user != nil {
		return user.Name
	}
	return in.GuestName
}

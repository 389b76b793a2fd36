package booking

import (
	"context"
	"time"

	"github.com/korefit/studio-api/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Any error rolls everything back.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Lookups --------
	GetTimeSlot(ctx context.Context, id uint) (*models.TimeSlot, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, b *models.Booking) error
	ListBookingsForDay(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	CountActiveBookingsForUser(ctx context.Context, userID uint) (int64, error)

	// -------- Capacity groups --------
	// AllocateGroup finds the first group on the schedule with spare
	// capacity (or creates the next one) and takes one slot. Must be
	// called inside Transaction; the implementation serializes
	// allocations per schedule.
	AllocateGroup(ctx context.Context, scheduleID uint, capacity int) (*models.SessionGroup, error)

	// ReleaseGroupSlot gives one slot back, never dropping below zero.
	ReleaseGroupSlot(ctx context.Context, groupID uint) error

	// -------- Cancellation requests --------
	GetCancellationRequest(ctx context.Context, id uint) (*models.CancellationRequest, error)
	CreateCancellationRequest(ctx context.Context, cr *models.CancellationRequest) error
	UpdateCancellationRequest(ctx context.Context, cr *models.CancellationRequest) error
	ListCancellationRequests(ctx context.Context, status string) ([]models.CancellationRequest, error)
}

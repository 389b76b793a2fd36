package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewBookingGormRepository(tx))
	})
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetTimeSlot(
	ctx context.Context,
	id uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Session").
		First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("time_slot_not_found", "Time slot not found.")
		}
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("user_not_found", "User not found.")
		}
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("booking_not_found", "Booking not found.")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	ref string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Preload("TimeSlot.Session").
		Where("reference = ?", ref).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("booking_not_found", "Booking not found.")
		}
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Preload("TimeSlot.Session").
		Preload("User").
		Joins("JOIN time_slots ON time_slots.id = bookings.time_slot_id").
		Where("time_slots.start_time >= ? AND time_slots.start_time < ?", start, end).
		Order("time_slots.start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) CountActiveBookingsForUser(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, string(domain.StatusBooked)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Capacity groups
// --------------------------------------------------

// AllocateGroup takes one slot in the first group on the schedule that
// still has room, creating the next overflow group when all are full.
//
// Two locks make this race-free under concurrent admissions:
//   - pg_advisory_xact_lock keyed by schedule serializes the whole
//     find-or-create decision for that schedule (and only that
//     schedule), closing the window where two transactions both decide
//     to create group N. The lock releases itself at commit/rollback.
//   - FOR UPDATE on the candidate row keeps a concurrent transaction
//     from reading a stale current_count.
func (r *BookingGormRepository) AllocateGroup(
	ctx context.Context,
	scheduleID uint,
	capacity int,
) (*models.SessionGroup, error) {

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(scheduleID)).Error; err != nil {
		return nil, err
	}

	var group models.SessionGroup
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("schedule_id = ? AND current_count < capacity", scheduleID).
		Order("group_number ASC").
		First(&group).Error

	switch {
	case err == nil:
		group.CurrentCount++
		if err := r.db.WithContext(ctx).Save(&group).Error; err != nil {
			return nil, err
		}
		return &group, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		var next int
		if err := r.db.WithContext(ctx).
			Model(&models.SessionGroup{}).
			Where("schedule_id = ?", scheduleID).
			Select("COALESCE(MAX(group_number) + 1, 0)").
			Scan(&next).Error; err != nil {
			return nil, err
		}

		group = models.SessionGroup{
			ScheduleID:   scheduleID,
			GroupNumber:  next,
			Capacity:     capacity,
			CurrentCount: 1,
		}
		if err := r.db.WithContext(ctx).Create(&group).Error; err != nil {
			return nil, err
		}
		return &group, nil

	default:
		return nil, err
	}
}

func (r *BookingGormRepository) ReleaseGroupSlot(
	ctx context.Context,
	groupID uint,
) error {
	// Floored at zero so a racing double-cancel cannot underflow.
	return r.db.WithContext(ctx).
		Exec(
			"UPDATE session_groups SET current_count = GREATEST(current_count - 1, 0), updated_at = NOW() WHERE id = ?",
			groupID,
		).Error
}

// --------------------------------------------------
// Cancellation requests
// --------------------------------------------------

func (r *BookingGormRepository) GetCancellationRequest(
	ctx context.Context,
	id uint,
) (*models.CancellationRequest, error) {

	var cr models.CancellationRequest
	if err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.TimeSlot").
		First(&cr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("cancellation_request_not_found", "Cancellation request not found.")
		}
		return nil, err
	}
	return &cr, nil
}

func (r *BookingGormRepository) CreateCancellationRequest(
	ctx context.Context,
	cr *models.CancellationRequest,
) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *BookingGormRepository) UpdateCancellationRequest(
	ctx context.Context,
	cr *models.CancellationRequest,
) error {
	return r.db.WithContext(ctx).Save(cr).Error
}

func (r *BookingGormRepository) ListCancellationRequests(
	ctx context.Context,
	status string,
) ([]models.CancellationRequest, error) {

	q := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("User")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.CancellationRequest
	if err := q.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

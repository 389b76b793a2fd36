package booking

import (
	"context"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/timezone"
)

// ======================================================
// CREATE
// ======================================================

type CreateCancellationRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCancellationRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateCancellationRequest {
	return &CreateCancellationRequest{repo: repo, audit: audit}
}

func (uc *CreateCancellationRequest) Execute(
	ctx context.Context,
	bookingID uint,
	requester domain.Actor,
	message string,
) (*models.CancellationRequest, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID == nil || *b.UserID != requester.ID {
		return nil, httperr.ForbiddenErr("not_booking_owner", "You can only request cancellation of your own bookings.")
	}

	if b.Status != string(domain.StatusBooked) {
		return nil, httperr.ConflictErr("booking_not_active", "Only active bookings can be cancelled.")
	}

	cr := &models.CancellationRequest{
		BookingID: b.ID,
		UserID:    requester.ID,
		Status:    models.CancellationRequestPending,
		Message:   message,
	}

	if err := uc.repo.CreateCancellationRequest(ctx, cr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requester.ID,
		Action:   "cancellation_request_created",
		Entity:   "cancellation_request",
		EntityID: &cr.ID,
	})

	return cr, nil
}

// ======================================================
// APPROVE / REJECT
// ======================================================

type ResolveCancellationRequest struct {
	repo   domain.Repository
	cancel *CancelBooking
	audit  *audit.Dispatcher
}

func NewResolveCancellationRequest(
	repo domain.Repository,
	cancel *CancelBooking,
	audit *audit.Dispatcher,
) *ResolveCancellationRequest {
	return &ResolveCancellationRequest{
		repo:   repo,
		cancel: cancel,
		audit:  audit,
	}
}

// Approve cancels the underlying booking with staff privilege (the
// 24-hour window does not apply) and marks the request approved.
func (uc *ResolveCancellationRequest) Approve(
	ctx context.Context,
	requestID uint,
	approver domain.Actor,
) (*models.CancellationRequest, error) {

	cr, err := uc.loadPending(ctx, requestID, approver)
	if err != nil {
		return nil, err
	}

	if _, err := uc.cancel.Execute(ctx, cr.BookingID, approver); err != nil {
		return nil, err
	}

	return uc.resolve(ctx, cr, approver, models.CancellationRequestApproved, "")
}

func (uc *ResolveCancellationRequest) Reject(
	ctx context.Context,
	requestID uint,
	approver domain.Actor,
	reason string,
) (*models.CancellationRequest, error) {

	cr, err := uc.loadPending(ctx, requestID, approver)
	if err != nil {
		return nil, err
	}

	return uc.resolve(ctx, cr, approver, models.CancellationRequestRejected, reason)
}

func (uc *ResolveCancellationRequest) loadPending(
	ctx context.Context,
	requestID uint,
	approver domain.Actor,
) (*models.CancellationRequest, error) {

	if !approver.IsStaff() {
		return nil, httperr.ForbiddenErr("staff_only", "Only staff can resolve cancellation requests.")
	}

	cr, err := uc.repo.GetCancellationRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if cr.Status != models.CancellationRequestPending {
		return nil, httperr.ConflictErr("request_already_resolved", "This cancellation request was already resolved.")
	}

	return cr, nil
}

func (uc *ResolveCancellationRequest) resolve(
	ctx context.Context,
	cr *models.CancellationRequest,
	approver domain.Actor,
	status string,
	reason string,
) (*models.CancellationRequest, error) {

	now := timezone.Now()
	cr.Status = status
	cr.ResolvedBy = &approver.ID
	cr.ResolvedAt = &now
	if reason != "" {
		cr.Message = cr.Message + "\n[staff] " + reason
	}

	if err := uc.repo.UpdateCancellationRequest(ctx, cr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &approver.ID,
		Action:   "cancellation_request_" + status,
		Entity:   "cancellation_request",
		EntityID: &cr.ID,
	})

	return cr, nil
}

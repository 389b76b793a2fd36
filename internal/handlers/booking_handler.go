package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	ucBooking "github.com/korefit/studio-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create         *ucBooking.CreateBooking
	updateStatus   *ucBooking.UpdateBookingStatus
	confirmPayment *ucBooking.ConfirmPayment
	cancel         *ucBooking.CancelBooking
	delete         *ucBooking.DeleteBooking
	listByDate     *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	updateStatus *ucBooking.UpdateBookingStatus,
	confirmPayment *ucBooking.ConfirmPayment,
	cancel *ucBooking.CancelBooking,
	delete_ *ucBooking.DeleteBooking,
	listByDate *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		create:         create,
		updateStatus:   updateStatus,
		confirmPayment: confirmPayment,
		cancel:         cancel,
		delete:         delete_,
		listByDate:     listByDate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TimeSlotID       uint   `json:"time_slot_id" binding:"required"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	PaymentReference string `json:"payment_reference"`
}

type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// ======================================================
// CREATE (registered client)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		TimeSlotID:       req.TimeSlotID,
		UserID:           &actor.ID,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST (staff calendar)
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "A date is required.")
		return
	}

	date, err := parseStudioDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// STATUS (staff state machine)
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status payload.")
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), actor.ID, id, target, req.PaymentReference)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// PAYMENT CONFIRMATION
// ======================================================

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Invalid payment payload.")
		return
	}

	result, err := h.confirmPayment.Execute(c.Request.Context(), id, req.PaymentReference)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// CANCEL (owner or staff)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// DELETE (admin only)
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actor.ID, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(204)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	ucBooking "github.com/korefit/studio-api/internal/usecase/booking"
)

type CancellationHandler struct {
	create  *ucBooking.CreateCancellationRequest
	resolve *ucBooking.ResolveCancellationRequest
}

func NewCancellationHandler(
	create *ucBooking.CreateCancellationRequest,
	resolve *ucBooking.ResolveCancellationRequest,
) *CancellationHandler {
	return &CancellationHandler{
		create:  create,
		resolve: resolve,
	}
}

type CreateCancellationRequestBody struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Message   string `json:"message"`
}

type RejectCancellationRequestBody struct {
	Reason string `json:"reason"`
}

func (h *CancellationHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	var req CreateCancellationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid cancellation request data.")
		return
	}

	cr, err := h.create.Execute(c.Request.Context(), req.BookingID, actor, req.Message)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, cr)
}

func (h *CancellationHandler) Approve(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request_id", "Invalid cancellation request id.")
		return
	}

	cr, err := h.resolve.Approve(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, cr)
}

func (h *CancellationHandler) Reject(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request_id", "Invalid cancellation request id.")
		return
	}

	var req RejectCancellationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Invalid rejection payload.")
		return
	}

	cr, err := h.resolve.Reject(c.Request.Context(), id, actor, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, cr)
}

package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	"github.com/korefit/studio-api/internal/models"
	ucBooking "github.com/korefit/studio-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated surface: browsing sessions
// and booking as a guest.
type PublicHandler struct {
	db     *gorm.DB
	repo   domain.Repository
	create *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	create *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:     db,
		repo:   repo,
		create: create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type GuestBookingRequest struct {
	TimeSlotID       uint   `json:"time_slot_id" binding:"required"`
	GuestName        string `json:"guest_name"`
	GuestPhone       string `json:"guest_phone"`
	GuestEmail       string `json:"guest_email"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
}

////////////////////////////////////////////////////////
// SESSIONS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSessions(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("active = true")
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var sessions []models.Session
	if err := q.Order("id ASC").Find(&sessions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sessions", "Could not list sessions.")
		return
	}

	httpresp.List(c, sessions)
}

////////////////////////////////////////////////////////
// GUEST BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req GuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		TimeSlotID:       req.TimeSlotID,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		GuestEmail:       req.GuestEmail,
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

// GetBookingByReference lets a guest check their booking with the code
// from the confirmation message. No auth, so only the reference works.
func (h *PublicHandler) GetBookingByReference(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("reference"))
	if ref == "" {
		httperr.BadRequest(c, "missing_reference", "A booking reference is required.")
		return
	}

	b, err := h.repo.GetBookingByReference(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

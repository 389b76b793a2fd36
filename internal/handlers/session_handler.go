package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	"github.com/korefit/studio-api/internal/models"
)

type SessionHandler struct {
	db *gorm.DB
}

func NewSessionHandler(db *gorm.DB) *SessionHandler {
	return &SessionHandler{db: db}
}

type CreateSessionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price"`
	TrainerID   uint    `json:"trainer_id" binding:"required"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid session data.")
		return
	}

	var trainer models.User
	if err := h.db.Where("id = ? AND role = ?", req.TrainerID, models.RoleTrainer).
		First(&trainer).Error; err != nil {
		httperr.NotFound(c, "trainer_not_found", "Trainer not found.")
		return
	}

	session := models.Session{
		Name:        req.Name,
		Description: req.Description,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Capacity:    req.Capacity,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
		TrainerID:   trainer.ID,
	}

	if err := h.db.Create(&session).Error; err != nil {
		httperr.Internal(c, "failed_to_create_session", "Could not create the session.")
		return
	}

	httpresp.Created(c, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Preload("Trainer").Where("active = true")
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

type UpdateSessionRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Capacity    *int     `json:"capacity"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid session data.")
		return
	}

	var session models.Session
	if err := h.db.First(&session, id).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Session not found.")
		return
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		session.Capacity = *req.Capacity
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		session.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		session.Price = *req.Price
	}
	if req.Active != nil {
		session.Active = *req.Active
	}

	if err := h.db.Save(&session).Error; err != nil {
		httperr.Internal(c, "failed_to_update_session", "Could not update the session.")
		return
	}

	httpresp.OK(c, session)
}

// EffectiveCapacity exposes the capped group size so the frontend can
// show "5 of 5 spots" for a pilates session whose row says 12.
func (h *SessionHandler) EffectiveCapacity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
		return
	}

	var session models.Session
	if err := h.db.First(&session, id).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Session not found.")
		return
	}

	httpresp.OK(c, gin.H{
		"session_id":         session.ID,
		"capacity":           session.Capacity,
		"effective_capacity": domain.EffectiveCapacity(session.Category, session.Capacity),
	})
}

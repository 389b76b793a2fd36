package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	"github.com/korefit/studio-api/internal/models"
)

type UserHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewUserHandler(db *gorm.DB, repo domain.Repository) *UserHandler {
	return &UserHandler{db: db, repo: repo}
}

func (h *UserHandler) List(c *gin.Context) {
	role := c.Query("role")

	q := h.db.Order("id ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

// Delete removes a user. Blocked while the user still holds active
// bookings: those reservations occupy group slots, so the account has
// to cancel them first.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	active, err := h.repo.CountActiveBookingsForUser(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_check_bookings", "Could not check the user's bookings.")
		return
	}
	if active > 0 {
		httperr.Conflict(c, "user_has_active_bookings", "Cancel the user's active bookings before deleting the account.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete the user.")
		return
	}

	c.Status(204)
}

// Me returns the authenticated user's profile, points included.
func (h *UserHandler) Me(c *gin.Context) {
	actor := actorFromContext(c)

	var user models.User
	if err := h.db.First(&user, actor.ID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, user)
}

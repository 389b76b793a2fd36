package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
	"github.com/korefit/studio-api/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type CreateScheduleRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	date, err := parseStudioDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	schedule := models.Schedule{Date: date}
	if err := h.db.Create(&schedule).Error; err != nil {
		httperr.Conflict(c, "schedule_already_exists", "A schedule for this date already exists.")
		return
	}

	httpresp.Created(c, schedule)
}

type AddTimeSlotRequest struct {
	SessionID uint   `json:"session_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // HH:mm
}

func (h *ScheduleHandler) AddTimeSlot(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_schedule_id", "Invalid schedule id.")
		return
	}

	var req AddTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid time slot data.")
		return
	}

	var schedule models.Schedule
	if err := h.db.First(&schedule, scheduleID).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "Schedule not found.")
		return
	}

	var session models.Session
	if err := h.db.First(&session, req.SessionID).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Session not found.")
		return
	}

	start, err := parseStudioDateTime(schedule.Date.Format("2006-01-02"), req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid start time.")
		return
	}

	slot := models.TimeSlot{
		ScheduleID: schedule.ID,
		SessionID:  session.ID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(session.DurationMin) * time.Minute),
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_slot", "Could not create the time slot.")
		return
	}

	httpresp.Created(c, slot)
}

// GetByDate returns the day's timetable with slots, sessions and current
// group occupancy, for the calendar view.
func (h *ScheduleHandler) GetByDate(c *gin.Context) {
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

	var schedule models.Schedule
	if err := h.db.
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("time_slots.start_time ASC")
		}).
		Preload("TimeSlots.Session").
		Where("date = ?", date).
		First(&schedule).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "No schedule for this date.")
		return
	}

	var groups []models.SessionGroup
	if err := h.db.
		Where("schedule_id = ?", schedule.ID).
		Order("group_number ASC").
		Find(&groups).Error; err != nil {
		httperr.Internal(c, "failed_to_load_groups", "Could not load capacity groups.")
		return
	}

	httpresp.OK(c, gin.H{
		"schedule": schedule,
		"groups":   groups,
	})
}

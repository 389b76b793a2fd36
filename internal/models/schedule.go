package models

import "time"

// Schedule is one calendar day of the studio timetable. Time slots hang
// off it and capacity groups are scoped to it.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date time.Time `gorm:"uniqueIndex;not null" json:"date"`

	TimeSlots []TimeSlot `json:"time_slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeSlot binds a session to a start/end time on a schedule.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduleID uint     `gorm:"index" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"schedule"`

	SessionID uint    `json:"session_id"`
	Session   Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"session"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

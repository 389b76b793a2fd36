package models

import "time"

// SessionGroup is a capacity bucket for one schedule. Group 0 fills
// first; overflow spills into group 1, 2 and so on. CurrentCount is only
// ever mutated under the allocator's locks and never exceeds Capacity.
type SessionGroup struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduleID uint     `gorm:"index:idx_schedule_group,unique" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"schedule"`

	GroupNumber  int `gorm:"index:idx_schedule_group,unique" json:"group_number"`
	Capacity     int `gorm:"not null" json:"capacity"`
	CurrentCount int `gorm:"default:0" json:"current_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public lookup code handed to guests who have no account.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	TimeSlotID uint     `json:"time_slot_id"`
	TimeSlot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"time_slot"`

	ScheduleID uint     `gorm:"index" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"schedule"`

	SessionGroupID *uint         `json:"session_group_id"`
	SessionGroup   *SessionGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"session_group,omitempty"`

	// Either UserID or the guest fields are set, never neither.
	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	GuestName  string `gorm:"size:100" json:"guest_name"`
	GuestPhone string `gorm:"size:20" json:"guest_phone"`
	GuestEmail string `gorm:"size:100" json:"guest_email"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`

	PaymentMethod    string `gorm:"size:30" json:"payment_method"`
	PaymentReference string `gorm:"size:100" json:"payment_reference"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}

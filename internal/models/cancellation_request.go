package models

import "time"

const (
	CancellationRequestPending  = "pending"
	CancellationRequestApproved = "approved"
	CancellationRequestRejected = "rejected"
)

// CancellationRequest lets a client ask staff to cancel a booking that is
// already inside the 24-hour window. Approval runs the cancellation path
// with staff privilege.
type CancellationRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"booking"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Status  string `gorm:"size:20;default:'pending'" json:"status"`
	Message string `gorm:"size:255" json:"message"`

	ResolvedBy *uint      `json:"resolved_by"`
	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

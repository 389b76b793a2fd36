package models

import "time"

// LoyaltyTransaction is one entry in the points ledger. The running total
// lives on User.LoyaltyPoints and is updated in the same transaction.
type LoyaltyTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Points int    `gorm:"not null" json:"points"`
	Reason string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

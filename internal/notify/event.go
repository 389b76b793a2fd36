// Package notify delivers best-effort booking notifications to trainers.
package notify

import "time"

// BookingCreatedEvent carries everything a downstream consumer needs to
// tell a trainer about a new booking without touching the database.
type BookingCreatedEvent struct {
	BookingID   uint      `json:"booking_id"`
	Reference   string    `json:"reference"`
	SessionID   uint      `json:"session_id"`
	SessionName string    `json:"session_name"`
	TrainerID   uint      `json:"trainer_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ClientName  string    `json:"client_name"`
	Status      string    `json:"status"`
}

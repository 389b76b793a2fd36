package booking

import "github.com/korefit/studio-api/internal/models"

// Actor is whoever is asking for an operation. Handlers build it from
// the JWT claims; the cancellation-request approver passes a staff actor
// explicitly.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsStaff() bool {
	return models.IsStaffRole(a.Role)
}

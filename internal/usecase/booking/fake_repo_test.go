package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository. Transaction snapshots the
// whole state and restores it on error, mirroring a database rollback.
// txMu serializes transactions the way the advisory lock serializes
// allocations in Postgres.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users    map[uint]models.User
	slots    map[uint]models.TimeSlot
	bookings map[uint]models.Booking
	groups   map[uint]models.SessionGroup
	requests map[uint]models.CancellationRequest

	nextBookingID uint
	nextGroupID   uint
	nextRequestID uint

	failCreateBooking bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]models.User),
		slots:    make(map[uint]models.TimeSlot),
		bookings: make(map[uint]models.Booking),
		groups:   make(map[uint]models.SessionGroup),
		requests: make(map[uint]models.CancellationRequest),
	}
}

// --------------------------------------------------
// Seeding helpers
// --------------------------------------------------

func (f *fakeRepo) seedUser(id uint, role string) {
	f.users[id] = models.User{ID: id, Name: "User", Role: role}
}

func (f *fakeRepo) seedSlot(slotID, scheduleID uint, category string, capacity int, start time.Time) {
	f.slots[slotID] = models.TimeSlot{
		ID:         slotID,
		ScheduleID: scheduleID,
		SessionID:  1,
		Session: models.Session{
			ID:        1,
			Name:      "Class",
			Category:  category,
			Capacity:  capacity,
			TrainerID: 42,
		},
		Schedule:  models.Schedule{ID: scheduleID},
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func (f *fakeRepo) seedGroup(id, scheduleID uint, number, capacity, count int) {
	f.groups[id] = models.SessionGroup{
		ID:           id,
		ScheduleID:   scheduleID,
		GroupNumber:  number,
		Capacity:     capacity,
		CurrentCount: count,
	}
	if id > f.nextGroupID {
		f.nextGroupID = id
	}
}

func (f *fakeRepo) seedBooking(id, slotID uint, userID *uint, status string, groupID *uint) {
	f.bookings[id] = models.Booking{
		ID:             id,
		Reference:      fmt.Sprintf("ref-%d", id),
		TimeSlotID:     slotID,
		ScheduleID:     f.slots[slotID].ScheduleID,
		SessionGroupID: groupID,
		UserID:         userID,
		Status:         status,
		PaymentMethod:  "cash",
	}
	if id > f.nextBookingID {
		f.nextBookingID = id
	}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (f *fakeRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	snapshot := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snapshot)
		return err
	}
	return nil
}

type fakeState struct {
	bookings map[uint]models.Booking
	groups   map[uint]models.SessionGroup
	requests map[uint]models.CancellationRequest

	nextBookingID uint
	nextGroupID   uint
	nextRequestID uint
}

func (f *fakeRepo) snapshot() fakeState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return fakeState{
		bookings:      cloneMap(f.bookings),
		groups:        cloneMap(f.groups),
		requests:      cloneMap(f.requests),
		nextBookingID: f.nextBookingID,
		nextGroupID:   f.nextGroupID,
		nextRequestID: f.nextRequestID,
	}
}

func (f *fakeRepo) restore(s fakeState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bookings = s.bookings
	f.groups = s.groups
	f.requests = s.requests
	f.nextBookingID = s.nextBookingID
	f.nextGroupID = s.nextGroupID
	f.nextRequestID = s.nextRequestID
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (f *fakeRepo) GetTimeSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[id]
	if !ok {
		return nil, httperr.NotFoundErr("time_slot_not_found", "Time slot not found.")
	}
	return &slot, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, httperr.NotFoundErr("user_not_found", "User not found.")
	}
	return &user, nil
}

func (f *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.NotFoundErr("booking_not_found", "Booking not found.")
	}
	if slot, ok := f.slots[b.TimeSlotID]; ok {
		b.TimeSlot = slot
	}
	return &b, nil
}

func (f *fakeRepo) GetBookingByReference(_ context.Context, ref string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.Reference == ref {
			return &b, nil
		}
	}
	return nil, httperr.NotFoundErr("booking_not_found", "Booking not found.")
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreateBooking {
		return errors.New("forced insert failure")
	}

	f.nextBookingID++
	b.ID = f.nextBookingID
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[b.ID]; !ok {
		return httperr.NotFoundErr("booking_not_found", "Booking not found.")
	}
	stored := *b
	stored.TimeSlot = models.TimeSlot{}
	f.bookings[b.ID] = stored
	return nil
}

func (f *fakeRepo) DeleteBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.bookings, b.ID)
	return nil
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, start, end time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		slot, ok := f.slots[b.TimeSlotID]
		if !ok {
			continue
		}
		if !slot.StartTime.Before(start) && slot.StartTime.Before(end) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CountActiveBookingsForUser(_ context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, b := range f.bookings {
		if b.UserID != nil && *b.UserID == userID && b.Status == string(domain.StatusBooked) {
			count++
		}
	}
	return count, nil
}

// --------------------------------------------------
// Capacity groups
// --------------------------------------------------

func (f *fakeRepo) AllocateGroup(_ context.Context, scheduleID uint, capacity int) (*models.SessionGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var candidate *models.SessionGroup
	maxNumber := -1
	for id := range f.groups {
		g := f.groups[id]
		if g.ScheduleID != scheduleID {
			continue
		}
		if g.GroupNumber > maxNumber {
			maxNumber = g.GroupNumber
		}
		if g.CurrentCount < g.Capacity {
			if candidate == nil || g.GroupNumber < candidate.GroupNumber {
				c := g
				candidate = &c
			}
		}
	}

	if candidate != nil {
		candidate.CurrentCount++
		f.groups[candidate.ID] = *candidate
		return candidate, nil
	}

	f.nextGroupID++
	g := models.SessionGroup{
		ID:           f.nextGroupID,
		ScheduleID:   scheduleID,
		GroupNumber:  maxNumber + 1,
		Capacity:     capacity,
		CurrentCount: 1,
	}
	f.groups[g.ID] = g
	return &g, nil
}

func (f *fakeRepo) ReleaseGroupSlot(_ context.Context, groupID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	g, ok := f.groups[groupID]
	if !ok {
		return httperr.NotFoundErr("group_not_found", "Capacity group not found.")
	}
	if g.CurrentCount > 0 {
		g.CurrentCount--
	}
	f.groups[groupID] = g
	return nil
}

// --------------------------------------------------
// Cancellation requests
// --------------------------------------------------

func (f *fakeRepo) GetCancellationRequest(_ context.Context, id uint) (*models.CancellationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cr, ok := f.requests[id]
	if !ok {
		return nil, httperr.NotFoundErr("cancellation_request_not_found", "Cancellation request not found.")
	}
	return &cr, nil
}

func (f *fakeRepo) CreateCancellationRequest(_ context.Context, cr *models.CancellationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextRequestID++
	cr.ID = f.nextRequestID
	f.requests[cr.ID] = *cr
	return nil
}

func (f *fakeRepo) UpdateCancellationRequest(_ context.Context, cr *models.CancellationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.requests[cr.ID]; !ok {
		return httperr.NotFoundErr("cancellation_request_not_found", "Cancellation request not found.")
	}
	f.requests[cr.ID] = *cr
	return nil
}

func (f *fakeRepo) ListCancellationRequests(_ context.Context, status string) ([]models.CancellationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.CancellationRequest
	for _, cr := range f.requests {
		if status == "" || cr.Status == status {
			out = append(out, cr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Side-effect fakes
// --------------------------------------------------

type fakeLedger struct {
	mu     sync.Mutex
	awards []award
	fail   bool
}

type award struct {
	userID uint
	points int
	reason string
}

func (l *fakeLedger) Award(_ context.Context, userID uint, points int, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fail {
		return errors.New("ledger down")
	}
	l.awards = append(l.awards, award{userID: userID, points: points, reason: reason})
	return nil
}

type nopSink struct{}

func (nopSink) Log(*uint, string, string, *uint, any) error { return nil }

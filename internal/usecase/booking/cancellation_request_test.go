package booking_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/models"
	usecase "github.com/korefit/studio-api/internal/usecase/booking"
)

func newResolveFixture(f *fakeRepo) *usecase.ResolveCancellationRequest {
	cancel := usecase.NewCancelBooking(f, newAuditDispatcher())
	return usecase.NewResolveCancellationRequest(f, cancel, newAuditDispatcher())
}

func TestCreateCancellationRequest(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusBooked), nil)

	uc := usecase.NewCreateCancellationRequest(f, newAuditDispatcher())

	cr, err := uc.Execute(context.Background(), 1, domain.Actor{ID: 7, Role: "client"}, "caught a cold")
	require.NoError(t, err)

	assert.Equal(t, models.CancellationRequestPending, cr.Status)
	assert.Equal(t, uint(1), cr.BookingID)
	assert.Equal(t, uint(7), cr.UserID)
	assert.Equal(t, "caught a cold", cr.Message)
}

func TestCreateCancellationRequest_NotOwner(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusBooked), nil)

	uc := usecase.NewCreateCancellationRequest(f, newAuditDispatcher())

	_, err := uc.Execute(context.Background(), 1, domain.Actor{ID: 8, Role: "client"}, "")
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "not_booking_owner"))
}

func TestCreateCancellationRequest_BookingNotActive(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusCancelled), nil)

	uc := usecase.NewCreateCancellationRequest(f, newAuditDispatcher())

	_, err := uc.Execute(context.Background(), 1, domain.Actor{ID: 7, Role: "client"}, "")
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "booking_not_active"))
}

func TestResolveCancellationRequest_StaffOnly(t *testing.T) {
	f := newFakeRepo()
	uc := newResolveFixture(f)

	_, err := uc.Approve(context.Background(), 1, domain.Actor{ID: 7, Role: "client"})
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "staff_only"))

	_, err = uc.Reject(context.Background(), 1, domain.Actor{ID: 7, Role: "trainer"}, "no")
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "staff_only"))
}

func TestResolveCancellationRequest_ApproveBypassesWindow(t *testing.T) {
	f := newFakeRepo()
	// One hour out: the client could not cancel this themselves.
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedGroup(1, 10, 0, 10, 1)
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusBooked), uintPtr(1))
	f.requests[1] = models.CancellationRequest{
		ID:        1,
		BookingID: 1,
		UserID:    7,
		Status:    models.CancellationRequestPending,
	}
	f.nextRequestID = 1

	uc := newResolveFixture(f)

	cr, err := uc.Approve(context.Background(), 1, domain.Actor{ID: 2, Role: "manager"})
	require.NoError(t, err)

	assert.Equal(t, models.CancellationRequestApproved, cr.Status)
	require.NotNil(t, cr.ResolvedBy)
	assert.Equal(t, uint(2), *cr.ResolvedBy)
	assert.NotNil(t, cr.ResolvedAt)

	b, err := f.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)

	_, _, count := groupByNumber(f, 10, 0)
	assert.Equal(t, 0, count)
}

func TestResolveCancellationRequest_RejectKeepsBooking(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusBooked), nil)
	f.requests[1] = models.CancellationRequest{
		ID:        1,
		BookingID: 1,
		UserID:    7,
		Status:    models.CancellationRequestPending,
		Message:   "feeling unwell",
	}
	f.nextRequestID = 1

	uc := newResolveFixture(f)

	cr, err := uc.Reject(context.Background(), 1, domain.Actor{ID: 2, Role: "admin"}, "class is about to start")
	require.NoError(t, err)

	assert.Equal(t, models.CancellationRequestRejected, cr.Status)
	assert.True(t, strings.Contains(cr.Message, "feeling unwell"))
	assert.True(t, strings.Contains(cr.Message, "[staff] class is about to start"))

	b, err := f.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBooked), b.Status)
}

func TestResolveCancellationRequest_AlreadyResolved(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(time.Hour))
	f.seedBooking(1, 1, uintPtr(7), string(domain.StatusBooked), nil)
	f.requests[1] = models.CancellationRequest{
		ID:        1,
		BookingID: 1,
		UserID:    7,
		Status:    models.CancellationRequestRejected,
	}
	f.nextRequestID = 1

	uc := newResolveFixture(f)

	_, err := uc.Approve(context.Background(), 1, domain.Actor{ID: 2, Role: "admin"})
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "request_already_resolved"))
}

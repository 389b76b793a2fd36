package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korefit/studio-api/internal/audit"
	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/notify"
	usecase "github.com/korefit/studio-api/internal/usecase/booking"
)

func newAuditDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{})
}

func newNotifyDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(notify.LogNotifier{})
}

func groupByNumber(f *fakeRepo, scheduleID uint, number int) (exists bool, capacity, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.groups {
		if g.ScheduleID == scheduleID && g.GroupNumber == number {
			return true, g.Capacity, g.CurrentCount
		}
	}
	return false, 0, 0
}

func TestCreateBooking_GuestValidation(t *testing.T) {
	f := newFakeRepo()
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	_, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID: 1,
		GuestName:  "Achieng",
		// no phone
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestCreateBooking_SlotNotFound(t *testing.T) {
	f := newFakeRepo()
	f.seedUser(7, "client")
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	userID := uint(7)
	_, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID: 99,
		UserID:     &userID,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCreateBooking_UserNotFound(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(48*time.Hour))
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	userID := uint(404)
	_, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID: 1,
		UserID:     &userID,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCreateBooking_RegisteredClient(t *testing.T) {
	f := newFakeRepo()
	f.seedUser(7, "client")
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(48*time.Hour))
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	userID := uint(7)
	b, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID:    1,
		UserID:        &userID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBooked), b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, uint(10), b.ScheduleID)
	require.NotNil(t, b.SessionGroupID)

	exists, capacity, count := groupByNumber(f, 10, 0)
	require.True(t, exists)
	assert.Equal(t, 10, capacity) // yoga is ceiling-capped at 10
	assert.Equal(t, 1, count)
}

func TestCreateBooking_MpesaWithReferenceIsBornCompleted(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "pilates", 12, time.Now().Add(48*time.Hour))
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	b, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID:       1,
		GuestName:        "Achieng",
		GuestPhone:       "0712345678",
		PaymentMethod:    "mpesa",
		PaymentReference: "MPESA-QX81",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	assert.Equal(t, "254712345678", b.GuestPhone)
}

func TestCreateBooking_OverflowOpensNextGroup(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(48*time.Hour))
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	var wg sync.WaitGroup
	errs := make([]error, 12)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), usecase.CreateBookingInput{
				TimeSlotID:    1,
				GuestName:     "Guest",
				GuestPhone:    "0712345678",
				PaymentMethod: "cash",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "booking %d", i)
	}

	exists, _, count := groupByNumber(f, 10, 0)
	require.True(t, exists)
	assert.Equal(t, 10, count)

	exists, capacity, count := groupByNumber(f, 10, 1)
	require.True(t, exists)
	assert.Equal(t, 10, capacity)
	assert.Equal(t, 2, count)

	exists, _, _ = groupByNumber(f, 10, 2)
	assert.False(t, exists)
}

func TestCreateBooking_FillsLowestGroupFirst(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(48*time.Hour))
	f.seedGroup(1, 10, 0, 10, 9)
	f.seedGroup(2, 10, 1, 10, 3)
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	b, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID:    1,
		GuestName:     "Guest",
		GuestPhone:    "0712345678",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, b.SessionGroupID)
	assert.Equal(t, uint(1), *b.SessionGroupID)

	_, _, count := groupByNumber(f, 10, 0)
	assert.Equal(t, 10, count)
}

func TestCreateBooking_RollbackLeavesGroupsUntouched(t *testing.T) {
	f := newFakeRepo()
	f.seedSlot(1, 10, "yoga", 25, time.Now().Add(48*time.Hour))
	f.failCreateBooking = true
	uc := usecase.NewCreateBooking(f, newAuditDispatcher(), newNotifyDispatcher())

	_, err := uc.Execute(context.Background(), usecase.CreateBookingInput{
		TimeSlotID:    1,
		GuestName:     "Guest",
		GuestPhone:    "0712345678",
		PaymentMethod: "cash",
	})
	require.Error(t, err)

	// The group increment must roll back with the failed insert.
	exists, _, _ := groupByNumber(f, 10, 0)
	assert.False(t, exists)
	assert.Empty(t, f.bookings)
}

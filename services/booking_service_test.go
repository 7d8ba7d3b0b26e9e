package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(roomID, in, out string) CreateBookingInput {
	return CreateBookingInput{
		UserID:   guest.UserID,
		RoomID:   roomID,
		CheckIn:  date(in),
		CheckOut: date(out),
		Guests:   models.Guests{Adults: 2},
	}
}

func TestCreateBooking(t *testing.T) {
	svc, store, notifier := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, constants.BookingStatusPending, booking.Status)
	assert.Equal(t, "hotel-1", booking.HotelID)
	assert.Equal(t, "Seaside Resort", booking.HotelName)
	assert.Equal(t, 300.0, booking.TotalPrice)

	saved, err := store.Bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.RoomID, saved.RoomID)
	assert.Len(t, notifier.created, 1)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, _, notifier := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-05"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, stay("room-std", "2025-06-03", "2025-06-08"))
	require.True(t, errors.HasCode(err, errors.ErrCodeDateConflict))
	assert.Equal(t, first.ID, errors.GetAppError(err).Conflict.BookingID)
	assert.Len(t, notifier.created, 1)
}

func TestCreateBookingSameDayHandoff(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-05"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, stay("room-std", "2025-06-05", "2025-06-07"))
	assert.NoError(t, err)
	_, err = svc.CreateBooking(ctx, stay("room-std", "2025-05-28", "2025-06-01"))
	assert.NoError(t, err)
}

func TestCreateBookingAfterCancellation(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-05"))
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, first.ID, guest)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, stay("room-std", "2025-06-02", "2025-06-04"))
	assert.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	in := stay("room-std", "2025-06-01", "2025-06-04")
	in.UserID = ""
	_, err := svc.CreateBooking(ctx, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	in = stay("room-std", "2025-06-01", "2025-06-04")
	in.HotelID = "hotel-off"
	_, err = svc.CreateBooking(ctx, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	in = stay("room-suite", "2025-06-01", "2025-06-04")
	in.Guests = models.Guests{Adults: 5}
	_, err = svc.CreateBooking(ctx, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCapacityExceeded))
}

func TestCreateBookingConcurrentSingleWinner(t *testing.T) {
	svc, store, _ := newBookingFixture(t)
	ctx := context.Background()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// các khoảng ngày khác nhau nhưng đều chứa đêm 2025-06-03
			in := stay("room-std", "2025-06-03", "2025-06-04")
			in.CheckIn = in.CheckIn.AddDate(0, 0, -(i % 3))
			in.CheckOut = in.CheckOut.AddDate(0, 0, i%2)
			_, err := svc.CreateBooking(ctx, in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.HasCode(err, errors.ErrCodeDateConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	active, err := store.Bookings.ListActiveByRoom(ctx, "room-std", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCreateBookingHonoursContext(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	locker := svc.locker

	unlock, err := locker.Lock(context.Background(), roomLockKey("room-std"))
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-02"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransitionStatus(t *testing.T) {
	svc, _, notifier := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)

	_, err = svc.TransitionStatus(ctx, booking.ID, constants.BookingStatusConfirmed, guest)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden), "guests cannot confirm")

	confirmed, err := svc.TransitionStatus(ctx, booking.ID, constants.BookingStatusConfirmed, operator)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusConfirmed, confirmed.Status)

	_, err = svc.TransitionStatus(ctx, booking.ID, constants.BookingStatusConfirmed, admin)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	_, err = svc.TransitionStatus(ctx, booking.ID, constants.BookingStatusPending, admin)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.CancelBooking(ctx, booking.ID, stranger)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	cancelled, err := svc.CancelBooking(ctx, booking.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)

	_, err = svc.TransitionStatus(ctx, booking.ID, constants.BookingStatusConfirmed, admin)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	assert.Equal(t, []string{"pending->confirmed", "confirmed->cancelled"}, notifier.changed)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, notifier := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, booking.ID, guest)
	require.NoError(t, err)
	again, err := svc.CancelBooking(ctx, booking.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, again.Status)
	assert.Len(t, notifier.changed, 1)
}

func TestTransitionUnknownBooking(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	_, err := svc.CancelBooking(context.Background(), "missing", admin)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestGetBookingAccess(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()
	booking, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)

	_, err = svc.GetBooking(ctx, booking.ID, guest)
	assert.NoError(t, err)
	_, err = svc.GetBooking(ctx, booking.ID, operator)
	assert.NoError(t, err)
	_, err = svc.GetBooking(ctx, booking.ID, stranger)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
}

func TestDeleteBookingAdminOnly(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()
	booking, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)

	assert.True(t, errors.HasCode(svc.DeleteBooking(ctx, booking.ID, operator), errors.ErrCodeForbidden))
	require.NoError(t, svc.DeleteBooking(ctx, booking.ID, admin))
	assert.True(t, errors.HasCode(svc.DeleteBooking(ctx, booking.ID, admin), errors.ErrCodeNotFound))
}

func TestRoomCalendar(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-01", "2025-06-04"))
	require.NoError(t, err)
	second, err := svc.CreateBooking(ctx, stay("room-std", "2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	entries, err := svc.RoomCalendar(ctx, "room-std", date("2025-06-05"), date("2025-06-30"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].BookingID)

	all, err := svc.RoomCalendar(ctx, "room-std", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.RoomCalendar(ctx, "room-std", date("2025-06-30"), date("2025-06-01"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRange))

	_, err = svc.RoomCalendar(ctx, "missing", time.Time{}, time.Time{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestNewBookingServiceDefaults(t *testing.T) {
	svc, store, _ := newBookingFixture(t)
	bare := NewBookingService(store.Hotels, store.Bookings, nil, nil, logger.Discard())
	assert.NotNil(t, bare.locker)
	assert.NotNil(t, bare.notifier)
	assert.NotNil(t, svc.evaluator)
}

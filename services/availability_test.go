package services

import (
	"context"
	"testing"
	"time"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNights(t *testing.T) {
	assert.Equal(t, 3, CalculateNights(date("2025-06-01"), date("2025-06-04")))
	assert.Equal(t, 1, CalculateNights(date("2025-06-01"), date("2025-06-02")))
	assert.Equal(t, 1, CalculateNights(date("2025-06-01"), date("2025-06-01").Add(3*time.Hour)))
}

func TestValidateStay(t *testing.T) {
	err := ValidateStay(date("2025-06-05"), date("2025-06-05"), models.Guests{Adults: 1})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRange))

	err = ValidateStay(date("2025-06-05"), date("2025-06-01"), models.Guests{Adults: 0})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRange), "range is checked before guests")

	err = ValidateStay(date("2025-06-01"), date("2025-06-05"), models.Guests{Adults: 0, Children: -1})
	require.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Len(t, errors.GetAppError(err).Fields, 2)

	assert.NoError(t, ValidateStay(date("2025-06-01"), date("2025-06-05"), models.Guests{Adults: 1}))
}

func TestFindConflict(t *testing.T) {
	bookings := []models.Booking{
		{ID: "cancelled", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-10"), Status: constants.BookingStatusCancelled},
		{ID: "active", CheckIn: date("2025-06-03"), CheckOut: date("2025-06-06"), Status: constants.BookingStatusConfirmed},
	}
	got := FindConflict(bookings, date("2025-06-05"), date("2025-06-07"))
	require.NotNil(t, got)
	assert.Equal(t, "active", got.ID)

	assert.Nil(t, FindConflict(bookings, date("2025-06-06"), date("2025-06-08")))
}

func newEvaluator(t *testing.T) (*AvailabilityEvaluator, *repository.Store) {
	store := repository.NewMemoryStore()
	seedHotel(t, store)
	return NewAvailabilityEvaluator(store.Hotels, store.Bookings), store
}

func TestCheckAvailabilityPrice(t *testing.T) {
	e, _ := newEvaluator(t)

	got, err := e.CheckAvailability(context.Background(), AvailabilityRequest{
		RoomID:   "room-std",
		CheckIn:  date("2025-06-01"),
		CheckOut: date("2025-06-04"),
		Guests:   models.Guests{Adults: 2, Children: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Nights)
	assert.Equal(t, 100.0, got.PricePerNight)
	assert.Equal(t, 300.0, got.TotalPrice)
	assert.Equal(t, "hotel-1", got.Hotel.ID)
}

func TestCheckAvailabilityErrors(t *testing.T) {
	e, store := newEvaluator(t)
	ctx := context.Background()
	require.NoError(t, store.Bookings.Create(ctx, &models.Booking{
		ID: "existing", UserID: "u", RoomID: "room-std",
		CheckIn: date("2025-07-10"), CheckOut: date("2025-07-15"),
		Status: constants.BookingStatusPending,
	}))

	cases := []struct {
		name string
		req  AvailabilityRequest
		code errors.ErrorCode
	}{
		{"unknown room", AvailabilityRequest{RoomID: "nope", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 1}}, errors.ErrCodeNotFound},
		{"inactive hotel", AvailabilityRequest{RoomID: "room-off", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 1}}, errors.ErrCodeNotFound},
		{"room disabled", AvailabilityRequest{RoomID: "room-closed", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 1}}, errors.ErrCodeRoomUnavailable},
		{"too many adults", AvailabilityRequest{RoomID: "room-std", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 3}}, errors.ErrCodeCapacityExceeded},
		{"too many children", AvailabilityRequest{RoomID: "room-std", CheckIn: date("2025-06-01"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 1, Children: 2}}, errors.ErrCodeCapacityExceeded},
		{"inverted range", AvailabilityRequest{RoomID: "nope", CheckIn: date("2025-06-03"), CheckOut: date("2025-06-02"), Guests: models.Guests{Adults: 1}}, errors.ErrCodeInvalidRange},
		{"overlap", AvailabilityRequest{RoomID: "room-std", CheckIn: date("2025-07-14"), CheckOut: date("2025-07-16"), Guests: models.Guests{Adults: 1}}, errors.ErrCodeDateConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CheckAvailability(ctx, tc.req)
			assert.True(t, errors.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func TestCheckAvailabilityConflictCarriesRange(t *testing.T) {
	e, store := newEvaluator(t)
	ctx := context.Background()
	require.NoError(t, store.Bookings.Create(ctx, &models.Booking{
		ID: "existing", UserID: "u", RoomID: "room-std",
		CheckIn: date("2025-07-10"), CheckOut: date("2025-07-15"),
		Status: constants.BookingStatusConfirmed,
	}))

	_, err := e.CheckAvailability(ctx, AvailabilityRequest{
		RoomID: "room-std", CheckIn: date("2025-07-12"), CheckOut: date("2025-07-13"), Guests: models.Guests{Adults: 1},
	})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	require.NotNil(t, appErr.Conflict)
	assert.Equal(t, "existing", appErr.Conflict.BookingID)
	assert.True(t, date("2025-07-10").Equal(appErr.Conflict.CheckIn))
	assert.True(t, date("2025-07-15").Equal(appErr.Conflict.CheckOut))
}

package models

import (
	"testing"
	"time"

	"luxestay/constants"
	"luxestay/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name   string
		a1, a2 string
		b1, b2 string
		want   bool
	}{
		{"same range", "2025-06-01", "2025-06-05", "2025-06-01", "2025-06-05", true},
		{"inside", "2025-06-01", "2025-06-10", "2025-06-03", "2025-06-04", true},
		{"partial", "2025-06-01", "2025-06-05", "2025-06-04", "2025-06-08", true},
		{"checkout equals next checkin", "2025-06-01", "2025-06-05", "2025-06-05", "2025-06-08", false},
		{"disjoint", "2025-06-01", "2025-06-03", "2025-06-10", "2025-06-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RangesOverlap(day(tc.a1), day(tc.a2), day(tc.b1), day(tc.b2))
			assert.Equal(t, tc.want, got)
			// đối xứng
			assert.Equal(t, tc.want, RangesOverlap(day(tc.b1), day(tc.b2), day(tc.a1), day(tc.a2)))
		})
	}
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: constants.BookingStatusPending}).IsActive())
	assert.True(t, (&Booking{Status: constants.BookingStatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: constants.BookingStatusCancelled}).IsActive())
}

func TestApplyTransition(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusPending}
		require.NoError(t, ApplyTransition(b, constants.BookingStatusConfirmed))
		assert.Equal(t, constants.BookingStatusConfirmed, b.Status)
	})

	t.Run("pending to cancelled", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusPending}
		require.NoError(t, ApplyTransition(b, constants.BookingStatusCancelled))
		assert.Equal(t, constants.BookingStatusCancelled, b.Status)
	})

	t.Run("confirmed to cancelled", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusConfirmed}
		require.NoError(t, ApplyTransition(b, constants.BookingStatusCancelled))
		assert.Equal(t, constants.BookingStatusCancelled, b.Status)
	})

	t.Run("confirmed to confirmed is invalid", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusConfirmed}
		err := ApplyTransition(b, constants.BookingStatusConfirmed)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusCancelled}
		err := ApplyTransition(b, constants.BookingStatusConfirmed)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
		assert.Equal(t, constants.BookingStatusCancelled, b.Status)
	})

	t.Run("cancel twice reports already cancelled", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusCancelled}
		assert.ErrorIs(t, ApplyTransition(b, constants.BookingStatusCancelled), errors.ErrBookingAlreadyCancelled)
	})

	t.Run("back to pending is invalid", func(t *testing.T) {
		b := &Booking{Status: constants.BookingStatusConfirmed}
		err := ApplyTransition(b, constants.BookingStatusPending)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
	})

	t.Run("unknown status", func(t *testing.T) {
		b := &Booking{Status: "archived"}
		err := ApplyTransition(b, constants.BookingStatusCancelled)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
	})
}

package models

import (
	"luxestay/constants"
	"luxestay/errors"
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return invalidTransition(constants.BookingStatusConfirmed, constants.BookingStatusConfirmed)
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return invalidTransition(constants.BookingStatusCancelled, constants.BookingStatusConfirmed)
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.ErrBookingAlreadyCancelled
}

// unknownState dùng cho status không hợp lệ trong dữ liệu cũ
type unknownState struct {
	status string
}

func (s *unknownState) Confirm(booking *Booking) error {
	return invalidTransition(s.status, constants.BookingStatusConfirmed)
}

func (s *unknownState) Cancel(booking *Booking) error {
	return invalidTransition(s.status, constants.BookingStatusCancelled)
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusPending:
		return &PendingState{}
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &unknownState{status: status}
	}
}

// ApplyTransition chuyển booking sang trạng thái mới theo state machine
func ApplyTransition(booking *Booking, newStatus string) error {
	state := GetBookingState(booking.Status)
	switch newStatus {
	case constants.BookingStatusConfirmed:
		return state.Confirm(booking)
	case constants.BookingStatusCancelled:
		return state.Cancel(booking)
	default:
		return invalidTransition(booking.Status, newStatus)
	}
}

func invalidTransition(from, to string) error {
	return errors.NewAppError(errors.ErrCodeInvalidTransition, "Cannot change booking status from "+from+" to "+to, nil)
}

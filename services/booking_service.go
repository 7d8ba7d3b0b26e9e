package services

import (
	"context"
	stderrors "errors"
	"time"

	"luxestay/builders"
	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/services/logger"
	"luxestay/services/notification"
	"luxestay/types"
	"luxestay/validator"
)

// số lần đọc lại khi UpdateStatus gặp ghi đồng thời
const transitionRetries = 3

type CreateBookingInput struct {
	UserID   string
	HotelID  string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   models.Guests
	Notes    string
}

// CalendarEntry là khoảng ngày đã có người giữ của một phòng
type CalendarEntry struct {
	BookingID string    `json:"bookingId"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	Status    string    `json:"status"`
}

type BookingService struct {
	hotels    repository.HotelRepository
	bookings  repository.BookingRepository
	evaluator *AvailabilityEvaluator
	locker    RoomLocker
	notifier  notification.Notifier
	logger    logger.Logger
}

func NewBookingService(
	hotels repository.HotelRepository,
	bookings repository.BookingRepository,
	locker RoomLocker,
	notifier notification.Notifier,
	log logger.Logger,
) *BookingService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if notifier == nil {
		notifier = notification.Noop{}
	}
	return &BookingService{
		hotels:    hotels,
		bookings:  bookings,
		evaluator: NewAvailabilityEvaluator(hotels, bookings),
		locker:    locker,
		notifier:  notifier,
		logger:    log,
	}
}

// CheckAvailability kiểm tra không ghi dữ liệu
func (s *BookingService) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error) {
	return s.evaluator.CheckAvailability(ctx, req)
}

// CreateBooking kiểm tra và ghi booking trong cùng một vùng khóa theo phòng
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.UserID == "" {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Not authorized", nil)
	}
	if in.RoomID == "" {
		return nil, errors.NewValidationError(errors.FieldError{Field: "roomId", Message: "Room ID is required"})
	}

	unlock, err := s.locker.Lock(ctx, roomLockKey(in.RoomID))
	if err != nil {
		s.logger.Error("lock room %s: %v", in.RoomID, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create booking", err)
	}
	defer unlock()

	availability, err := s.evaluator.CheckAvailability(ctx, AvailabilityRequest{
		RoomID:   in.RoomID,
		CheckIn:  in.CheckIn,
		CheckOut: in.CheckOut,
		Guests:   in.Guests,
	})
	if err != nil {
		return nil, err
	}

	if in.HotelID != "" && in.HotelID != availability.Hotel.ID {
		return nil, errors.NewValidationError(errors.FieldError{Field: "hotelId", Message: "Room does not belong to this hotel"})
	}

	booking := builders.NewBookingBuilder().
		WithUser(in.UserID).
		WithHotel(availability.Hotel.ID, availability.Hotel.Name).
		WithRoom(availability.Room.ID).
		WithStay(availability.CheckIn, availability.CheckOut).
		WithGuests(in.Guests).
		WithTotalPrice(availability.TotalPrice).
		WithNotes(in.Notes).
		Build()

	if err := s.bookings.Create(ctx, booking); err != nil {
		if stderrors.Is(err, errors.ErrOverlap) {
			return nil, s.overlapError(ctx, booking)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error("create booking for room %s: %v", in.RoomID, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create booking", err)
	}

	s.logger.Info("booking %s created for room %s (%s - %s)", booking.ID, booking.RoomID,
		booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))
	s.notifier.BookingCreated(*booking)
	return booking, nil
}

// overlapError đọc lại booking gây trùng sau khi store từ chối bản ghi
func (s *BookingService) overlapError(ctx context.Context, booking *models.Booking) error {
	existing, err := s.bookings.ListActiveByRoom(ctx, booking.RoomID, booking.CheckIn, booking.CheckOut)
	if err == nil {
		if conflict := FindConflict(existing, booking.CheckIn, booking.CheckOut); conflict != nil {
			return conflictError(conflict)
		}
	}
	return errors.NewDateConflict(errors.DateRange{CheckIn: booking.CheckIn, CheckOut: booking.CheckOut})
}

// authorizeTransition: xác nhận chỉ dành cho hotel/admin; hủy cho chủ booking, hotel, admin
func authorizeTransition(booking *models.Booking, newStatus string, actor types.Actor) error {
	if actor.UserID == "" {
		return errors.NewAppError(errors.ErrCodeUnauthorized, "Not authorized", nil)
	}
	switch newStatus {
	case constants.BookingStatusConfirmed:
		if !actor.CanManageBookings() {
			return errors.NewAppError(errors.ErrCodeForbidden, "Not authorized to confirm this booking", nil)
		}
	case constants.BookingStatusCancelled:
		if actor.UserID != booking.UserID && !actor.CanManageBookings() {
			return errors.NewAppError(errors.ErrCodeForbidden, "Not authorized to cancel this booking", nil)
		}
	}
	return nil
}

func (s *BookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("Booking")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	return booking, nil
}

// TransitionStatus đổi trạng thái booking theo state machine, ghi có điều kiện trên status cũ
func (s *BookingService) TransitionStatus(ctx context.Context, bookingID, newStatus string, actor types.Actor) (*models.Booking, error) {
	if newStatus != constants.BookingStatusConfirmed && newStatus != constants.BookingStatusCancelled {
		return nil, errors.NewValidationError(errors.FieldError{Field: "status", Message: "Status must be confirmed or cancelled"})
	}

	for attempt := 0; attempt < transitionRetries; attempt++ {
		booking, err := s.loadBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if err := authorizeTransition(booking, newStatus, actor); err != nil {
			return nil, err
		}

		previous := booking.Status
		next := *booking
		if err := models.ApplyTransition(&next, newStatus); err != nil {
			if stderrors.Is(err, errors.ErrBookingAlreadyCancelled) {
				return booking, nil
			}
			return nil, err
		}

		updated, err := s.bookings.UpdateStatus(ctx, bookingID, previous, next.Status)
		if stderrors.Is(err, errors.ErrStatusChanged) {
			continue
		}
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, errors.NewNotFound("Booking")
		}
		if err != nil {
			s.logger.Error("update booking %s status: %v", bookingID, err)
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update booking", err)
		}

		s.logger.Info("booking %s: %s -> %s by %s", bookingID, previous, updated.Status, actor.UserID)
		s.notifier.BookingStatusChanged(*updated, previous)
		return updated, nil
	}
	return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, "Booking was modified concurrently, please retry", errors.ErrStatusChanged)
}

// CancelBooking là TransitionStatus sang cancelled
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string, actor types.Actor) (*models.Booking, error) {
	return s.TransitionStatus(ctx, bookingID, constants.BookingStatusCancelled, actor)
}

// GetBooking cho phép chủ booking, hotel và admin xem
func (s *BookingService) GetBooking(ctx context.Context, id string, actor types.Actor) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.CanManageBookings() {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Not authorized to view this booking", nil)
	}
	return booking, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list bookings of user %s: %v", userID, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch bookings", err)
	}
	return bookings, nil
}

// ListBookings phân trang toàn bộ booking cho admin
func (s *BookingService) ListBookings(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	bookings, total, err := s.bookings.List(ctx, page, limit)
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch bookings", err)
	}
	return bookings, total, nil
}

// DeleteBooking xóa hẳn booking, chỉ admin
func (s *BookingService) DeleteBooking(ctx context.Context, id string, actor types.Actor) error {
	if !actor.IsAdmin() {
		return errors.NewAppError(errors.ErrCodeForbidden, "Admin access required", nil)
	}
	err := s.bookings.Delete(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return errors.NewNotFound("Booking")
	}
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete booking", err)
	}
	s.logger.Info("booking %s deleted by %s", id, actor.UserID)
	return nil
}

// RoomCalendar liệt kê các khoảng ngày đã bị giữ của phòng giao với [from, to)
func (s *BookingService) RoomCalendar(ctx context.Context, roomID string, from, to time.Time) ([]CalendarEntry, error) {
	if !from.IsZero() {
		from = validator.TruncateDay(from)
	}
	if !to.IsZero() {
		to = validator.TruncateDay(to)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "'to' must be after 'from'", nil)
	}

	if _, _, err := s.evaluator.lookupRoom(ctx, roomID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListActiveByRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}
	entries := make([]CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, CalendarEntry{
			BookingID: b.ID,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			Status:    b.Status,
		})
	}
	return entries, nil
}

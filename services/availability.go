package services

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/validator"
)

// AvailabilityRequest là yêu cầu kiểm tra phòng trống
type AvailabilityRequest struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   models.Guests
}

// Availability là kết quả khi phòng đặt được
type Availability struct {
	Hotel         *models.Hotel `json:"-"`
	Room          *models.Room  `json:"room"`
	CheckIn       time.Time     `json:"checkIn"`
	CheckOut      time.Time     `json:"checkOut"`
	Nights        int           `json:"nights"`
	PricePerNight float64       `json:"pricePerNight"`
	TotalPrice    float64       `json:"totalPrice"`
}

// AvailabilityEvaluator kiểm tra ngày, sức chứa, trùng lịch và tính giá
type AvailabilityEvaluator struct {
	hotels   repository.HotelRepository
	bookings repository.BookingRepository
}

func NewAvailabilityEvaluator(hotels repository.HotelRepository, bookings repository.BookingRepository) *AvailabilityEvaluator {
	return &AvailabilityEvaluator{hotels: hotels, bookings: bookings}
}

// ValidateStay kiểm tra khoảng ngày và số khách trước khi tra cứu phòng
func ValidateStay(checkIn, checkOut time.Time, guests models.Guests) error {
	if !checkIn.Before(checkOut) {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Check-out date must be after check-in date", nil)
	}

	var fields []errors.FieldError
	if guests.Adults < 1 {
		fields = append(fields, errors.FieldError{Field: "guests.adults", Message: "At least 1 adult is required"})
	}
	if guests.Children < 0 {
		fields = append(fields, errors.FieldError{Field: "guests.children", Message: "Children count cannot be negative"})
	}
	if len(fields) > 0 {
		return errors.NewValidationError(fields...)
	}
	return nil
}

// CalculateNights đếm số đêm, tối thiểu 1
func CalculateNights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

// FindConflict trả về booking đang hoạt động đầu tiên giao với [checkIn, checkOut)
func FindConflict(bookings []models.Booking, checkIn, checkOut time.Time) *models.Booking {
	for i := range bookings {
		if bookings[i].IsActive() && bookings[i].Overlaps(checkIn, checkOut) {
			return &bookings[i]
		}
	}
	return nil
}

func conflictError(b *models.Booking) error {
	return errors.NewDateConflict(errors.DateRange{
		BookingID: b.ID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
	})
}

// lookupRoom trả về NotFound khi phòng không tồn tại hoặc khách sạn ngừng hoạt động
func (e *AvailabilityEvaluator) lookupRoom(ctx context.Context, roomID string) (*models.Hotel, *models.Room, error) {
	hotel, room, err := e.hotels.FindRoom(ctx, roomID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, nil, errors.NewNotFound("Room")
	}
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load room", err)
	}
	if !hotel.IsActive {
		return nil, nil, errors.NewNotFound("Room")
	}
	return hotel, room, nil
}

// CheckAvailability chạy các bước theo thứ tự: ngày, số khách, phòng, sức chứa, trùng lịch, giá
func (e *AvailabilityEvaluator) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error) {
	checkIn := validator.TruncateDay(req.CheckIn)
	checkOut := validator.TruncateDay(req.CheckOut)

	if err := ValidateStay(checkIn, checkOut, req.Guests); err != nil {
		return nil, err
	}

	hotel, room, err := e.lookupRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Available {
		return nil, errors.NewAppError(errors.ErrCodeRoomUnavailable, "Room is not available for booking", nil)
	}
	if !room.Capacity.Fits(req.Guests) {
		return nil, errors.NewAppError(errors.ErrCodeCapacityExceeded, "Room capacity exceeded", nil)
	}

	existing, err := e.bookings.ListActiveByRoom(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}
	if conflict := FindConflict(existing, checkIn, checkOut); conflict != nil {
		return nil, conflictError(conflict)
	}

	nights := CalculateNights(checkIn, checkOut)
	return &Availability{
		Hotel:         hotel,
		Room:          room,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		PricePerNight: room.Price,
		TotalPrice:    room.Price * float64(nights),
	}, nil
}

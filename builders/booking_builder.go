package builders

import (
	"time"

	"luxestay/constants"
	"luxestay/models"

	"github.com/google/uuid"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo booking mới ở trạng thái pending với id sinh sẵn
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{
			ID:     uuid.NewString(),
			Status: constants.BookingStatusPending,
		},
	}
}

// WithUser thêm thông tin user
func (b *BookingBuilder) WithUser(userID string) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithHotel thêm thông tin khách sạn
func (b *BookingBuilder) WithHotel(hotelID, hotelName string) *BookingBuilder {
	b.booking.HotelID = hotelID
	b.booking.HotelName = hotelName
	return b
}

// WithRoom thêm thông tin phòng
func (b *BookingBuilder) WithRoom(roomID string) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

// WithStay thêm ngày nhận và trả phòng
func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

// WithGuests thêm số khách
func (b *BookingBuilder) WithGuests(guests models.Guests) *BookingBuilder {
	b.booking.Guests = guests
	return b
}

// WithTotalPrice thêm tổng giá
func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.booking.Notes = notes
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}

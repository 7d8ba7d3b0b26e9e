package dto

import "luxestay/models"

type GuestsRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (g GuestsRequest) ToModel() models.Guests {
	return models.Guests{Adults: g.Adults, Children: g.Children}
}

// CreateBookingRequest là DTO cho request đặt phòng.
// Số khách được kiểm tra ở AvailabilityEvaluator sau khoảng ngày.
type CreateBookingRequest struct {
	HotelID  string        `json:"hotelId"`
	RoomID   string        `json:"roomId" validate:"required"`
	CheckIn  string        `json:"checkIn" validate:"required"`
	CheckOut string        `json:"checkOut" validate:"required"`
	Guests   GuestsRequest `json:"guests"`
	Notes    string        `json:"notes" validate:"max=500"`
}

type AvailabilityCheckRequest struct {
	RoomID   string        `json:"roomId" validate:"required"`
	CheckIn  string        `json:"checkIn" validate:"required"`
	CheckOut string        `json:"checkOut" validate:"required"`
	Guests   GuestsRequest `json:"guests"`
}

// UpdateBookingStatusRequest là DTO cho request cập nhật trạng thái booking
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

package models

import (
	"time"

	"luxestay/constants"
)

type Guests struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
}

type Booking struct {
	ID         string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" bson:"userId" gorm:"type:varchar(36);index;not null"`
	HotelID    string    `json:"hotelId,omitempty" bson:"hotelId,omitempty" gorm:"type:varchar(36);index"`
	HotelName  string    `json:"hotelName" bson:"hotelName"`
	RoomID     string    `json:"roomId" bson:"roomId" gorm:"type:varchar(36);index;not null"`
	CheckIn    time.Time `json:"checkIn" bson:"checkIn" gorm:"type:date;not null"`
	CheckOut   time.Time `json:"checkOut" bson:"checkOut" gorm:"type:date;not null"`
	Guests     Guests    `json:"guests" bson:"guests" gorm:"embedded;embeddedPrefix:guests_"`
	Status     string    `json:"status" bson:"status" gorm:"size:20;index"`
	TotalPrice float64   `json:"totalPrice" bson:"totalPrice"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime"`
}

// IsActive: booking đang giữ phòng (pending hoặc confirmed)
func (b *Booking) IsActive() bool {
	return b.Status == constants.BookingStatusPending || b.Status == constants.BookingStatusConfirmed
}

// Overlaps dùng khoảng nửa mở [checkIn, checkOut): trả phòng ngày X không trùng nhận phòng ngày X
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// RangesOverlap: [a1,a2) và [b1,b2) giao nhau khi a1 < b2 và b1 < a2
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

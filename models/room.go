package models

import (
	"time"

	"github.com/lib/pq"
)

type Capacity struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
}

// Fits kiểm tra số khách có vừa sức chứa của phòng không
func (c Capacity) Fits(guests Guests) bool {
	return guests.Adults <= c.Adults && guests.Children <= c.Children
}

// Room thuộc về một Hotel, ID chỉ có ý nghĩa trong khách sạn cha
type Room struct {
	ID          string         `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	HotelID     string         `json:"hotelId" bson:"-" gorm:"type:varchar(36);index"`
	Type        string         `json:"type" bson:"type" gorm:"size:20"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Images      pq.StringArray `json:"images" bson:"images" gorm:"type:text[]"`
	Price       float64        `json:"price" bson:"price"`
	Capacity    Capacity       `json:"capacity" bson:"capacity" gorm:"embedded;embeddedPrefix:capacity_"`
	Amenities   pq.StringArray `json:"amenities" bson:"amenities" gorm:"type:text[]"`
	Available   bool           `json:"available" bson:"available"`
	CreatedAt   time.Time      `json:"-" bson:"-" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"-" bson:"-" gorm:"autoUpdateTime"`
}

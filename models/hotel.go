package models

import (
	"math"
	"strings"
	"time"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

type Location struct {
	Address     string      `json:"address" bson:"address"`
	City        string      `json:"city" bson:"city" gorm:"index"`
	State       string      `json:"state" bson:"state"`
	Country     string      `json:"country" bson:"country"`
	ZipCode     string      `json:"zipCode" bson:"zipCode"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates" gorm:"embedded;embeddedPrefix:coord_"`
}

type Amenity struct {
	ID          uint   `json:"-" bson:"-" gorm:"primaryKey"`
	HotelID     string `json:"-" bson:"-" gorm:"type:varchar(36);index"`
	Name        string `json:"name" bson:"name"`
	Icon        string `json:"icon" bson:"icon"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type HotelImage struct {
	ID      uint   `json:"-" bson:"-" gorm:"primaryKey"`
	HotelID string `json:"-" bson:"-" gorm:"type:varchar(36);index"`
	URL     string `json:"url" bson:"url"`
	Alt     string `json:"alt" bson:"alt"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type Review struct {
	ID        uint      `json:"-" bson:"-" gorm:"primaryKey"`
	HotelID   string    `json:"-" bson:"-" gorm:"type:varchar(36);index"`
	UserID    string    `json:"userId" bson:"userId" gorm:"type:varchar(36);index"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Policies struct {
	CheckIn      string `json:"checkIn" bson:"checkIn"`
	CheckOut     string `json:"checkOut" bson:"checkOut"`
	Cancellation string `json:"cancellation" bson:"cancellation"`
	Pets         bool   `json:"pets" bson:"pets"`
	Smoking      bool   `json:"smoking" bson:"smoking"`
}

type HotelContact struct {
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
}

type Hotel struct {
	ID          string       `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string       `json:"name" bson:"name" gorm:"size:100;not null"`
	Description string       `json:"description" bson:"description" gorm:"size:1000"`
	Images      []HotelImage `json:"images" bson:"images" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Location    Location     `json:"location" bson:"location" gorm:"embedded;embeddedPrefix:location_"`
	Amenities   []Amenity    `json:"amenities" bson:"amenities" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Rooms       []Room       `json:"rooms" bson:"rooms" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Rating      Rating       `json:"rating" bson:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	Reviews     []Review     `json:"reviews" bson:"reviews" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Policies    Policies     `json:"policies" bson:"policies" gorm:"embedded;embeddedPrefix:policy_"`
	Contact     HotelContact `json:"contact" bson:"contact" gorm:"embedded;embeddedPrefix:contact_"`
	IsActive    bool         `json:"isActive" bson:"isActive" gorm:"index"`
	Featured    bool         `json:"featured" bson:"featured"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime"`
}

// AmenityNames trả về tập tên tiện ích đã chuẩn hóa (lower-case)
func (h *Hotel) AmenityNames() map[string]struct{} {
	names := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		names[strings.ToLower(strings.TrimSpace(a.Name))] = struct{}{}
	}
	return names
}

// LowestPrice trả về giá phòng thấp nhất, ok=false nếu khách sạn chưa có phòng
func (h *Hotel) LowestPrice() (float64, bool) {
	if len(h.Rooms) == 0 {
		return 0, false
	}
	lowest := h.Rooms[0].Price
	for _, room := range h.Rooms[1:] {
		if room.Price < lowest {
			lowest = room.Price
		}
	}
	return lowest, true
}

func (h *Hotel) FindRoom(roomID string) (*Room, bool) {
	for i := range h.Rooms {
		if h.Rooms[i].ID == roomID {
			return &h.Rooms[i], true
		}
	}
	return nil, false
}

func (h *Hotel) HasReviewFrom(userID string) bool {
	for _, r := range h.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview thêm đánh giá và tính lại rating
func (h *Hotel) AddReview(review Review) {
	h.Reviews = append(h.Reviews, review)
	h.Rating = CalculateRating(h.Reviews)
}

// CalculateRating: average là trung bình làm tròn 1 chữ số thập phân, count = số review
func CalculateRating(reviews []Review) Rating {
	if len(reviews) == 0 {
		return Rating{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return Rating{
		Average: math.Round(avg*10) / 10,
		Count:   len(reviews),
	}
}

// ApplyDefaults điền các chính sách mặc định còn trống
func (p *Policies) ApplyDefaults(checkIn, checkOut, cancellation string) {
	if p.CheckIn == "" {
		p.CheckIn = checkIn
	}
	if p.CheckOut == "" {
		p.CheckOut = checkOut
	}
	if p.Cancellation == "" {
		p.Cancellation = cancellation
	}
}

package dto

import (
	"luxestay/constants"
	"luxestay/models"

	"github.com/google/uuid"
)

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type LocationRequest struct {
	Address     string              `json:"address" validate:"required"`
	City        string              `json:"city" validate:"required"`
	State       string              `json:"state"`
	Country     string              `json:"country"`
	ZipCode     string              `json:"zipCode"`
	Coordinates *CoordinatesRequest `json:"coordinates"`
}

type AmenityRequest struct {
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type ImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt"`
}

type CapacityRequest struct {
	Adults   int `json:"adults" validate:"min=1"`
	Children int `json:"children" validate:"min=0"`
}

type RoomRequest struct {
	Type        string          `json:"type" validate:"required,oneof=standard deluxe suite presidential"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       float64         `json:"price" validate:"gte=0"`
	Capacity    CapacityRequest `json:"capacity"`
	Amenities   []string        `json:"amenities"`
	Available   *bool           `json:"available"`
}

type PoliciesRequest struct {
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Cancellation string `json:"cancellation"`
	Pets         bool   `json:"pets"`
	Smoking      bool   `json:"smoking"`
}

type HotelContactRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"website" validate:"omitempty,url"`
}

// CreateHotelRequest là DTO cho request tạo khách sạn
type CreateHotelRequest struct {
	Name        string              `json:"name" validate:"required,min=2,max=100"`
	Description string              `json:"description" validate:"required,min=10,max=1000"`
	Location    LocationRequest     `json:"location"`
	Images      []ImageRequest      `json:"images" validate:"dive"`
	Amenities   []AmenityRequest    `json:"amenities" validate:"dive"`
	Rooms       []RoomRequest       `json:"rooms" validate:"dive"`
	Policies    PoliciesRequest     `json:"policies"`
	Contact     HotelContactRequest `json:"contact"`
	Featured    bool                `json:"featured"`
	IsActive    *bool               `json:"isActive"`
}

// ToModel chuyển request thành Hotel với id mới cho hotel và từng phòng
func (r CreateHotelRequest) ToModel() *models.Hotel {
	hotel := &models.Hotel{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Description: r.Description,
		Location: models.Location{
			Address: r.Location.Address,
			City:    r.Location.City,
			State:   r.Location.State,
			Country: r.Location.Country,
			ZipCode: r.Location.ZipCode,
		},
		Policies: models.Policies{
			CheckIn:      r.Policies.CheckIn,
			CheckOut:     r.Policies.CheckOut,
			Cancellation: r.Policies.Cancellation,
			Pets:         r.Policies.Pets,
			Smoking:      r.Policies.Smoking,
		},
		Contact: models.HotelContact{
			Phone:   r.Contact.Phone,
			Email:   r.Contact.Email,
			Website: r.Contact.Website,
		},
		Featured: r.Featured,
		IsActive: r.IsActive == nil || *r.IsActive,
	}
	hotel.Policies.ApplyDefaults(constants.DefaultCheckInTime, constants.DefaultCheckOutTime, constants.DefaultCancellation)

	if c := r.Location.Coordinates; c != nil {
		hotel.Location.Coordinates = models.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	for _, img := range r.Images {
		hotel.Images = append(hotel.Images, models.HotelImage{URL: img.URL, Alt: img.Alt})
	}
	for _, a := range r.Amenities {
		hotel.Amenities = append(hotel.Amenities, models.Amenity{Name: a.Name, Icon: a.Icon, Description: a.Description})
	}
	for _, room := range r.Rooms {
		hotel.Rooms = append(hotel.Rooms, models.Room{
			ID:          uuid.NewString(),
			HotelID:     hotel.ID,
			Type:        room.Type,
			Name:        room.Name,
			Description: room.Description,
			Images:      room.Images,
			Price:       room.Price,
			Capacity:    models.Capacity{Adults: room.Capacity.Adults, Children: room.Capacity.Children},
			Amenities:   room.Amenities,
			Available:   room.Available == nil || *room.Available,
		})
	}
	return hotel
}

// ReviewRequest là DTO cho request đánh giá khách sạn
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

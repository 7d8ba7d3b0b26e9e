package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRating(t *testing.T) {
	assert.Equal(t, Rating{}, CalculateRating(nil))

	rating := CalculateRating([]Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 4.3, rating.Average)
	assert.Equal(t, 3, rating.Count)
}

func TestHotelAddReview(t *testing.T) {
	h := &Hotel{}
	h.AddReview(Review{UserID: "u1", Rating: 5})
	h.AddReview(Review{UserID: "u2", Rating: 2})

	assert.Equal(t, 3.5, h.Rating.Average)
	assert.Equal(t, 2, h.Rating.Count)
	assert.True(t, h.HasReviewFrom("u1"))
	assert.False(t, h.HasReviewFrom("u3"))
}

func TestHotelLowestPrice(t *testing.T) {
	_, ok := (&Hotel{}).LowestPrice()
	assert.False(t, ok)

	h := &Hotel{Rooms: []Room{{Price: 300}, {Price: 120}, {Price: 180}}}
	price, ok := h.LowestPrice()
	assert.True(t, ok)
	assert.Equal(t, 120.0, price)
}

func TestHotelFindRoom(t *testing.T) {
	h := &Hotel{Rooms: []Room{{ID: "r1"}, {ID: "r2", Name: "Suite"}}}
	room, ok := h.FindRoom("r2")
	assert.True(t, ok)
	assert.Equal(t, "Suite", room.Name)

	_, ok = h.FindRoom("missing")
	assert.False(t, ok)
}

func TestAmenityNames(t *testing.T) {
	h := &Hotel{Amenities: []Amenity{{Name: " WiFi "}, {Name: "Pool"}}}
	names := h.AmenityNames()
	assert.Contains(t, names, "wifi")
	assert.Contains(t, names, "pool")
	assert.Len(t, names, 2)
}

func TestCapacityFits(t *testing.T) {
	c := Capacity{Adults: 2, Children: 1}
	assert.True(t, c.Fits(Guests{Adults: 2, Children: 1}))
	assert.True(t, c.Fits(Guests{Adults: 1}))
	assert.False(t, c.Fits(Guests{Adults: 3}))
	assert.False(t, c.Fits(Guests{Adults: 1, Children: 2}))
}

func TestPoliciesApplyDefaults(t *testing.T) {
	p := Policies{CheckOut: "10:00 AM"}
	p.ApplyDefaults("3:00 PM", "11:00 AM", "Free")
	assert.Equal(t, "3:00 PM", p.CheckIn)
	assert.Equal(t, "10:00 AM", p.CheckOut)
	assert.Equal(t, "Free", p.Cancellation)
}

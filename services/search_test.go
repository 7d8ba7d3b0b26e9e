package services

import (
	"math"
	"testing"
	"time"

	"luxestay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func catalogFixture() []models.Hotel {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Hotel{
		{
			ID: "h1", Name: "Seaside Resort", Description: "Beachfront rooms with ocean view",
			Location:  models.Location{City: "Nha Trang", Country: "Vietnam"},
			Amenities: []models.Amenity{{Name: "WiFi"}, {Name: "Pool"}},
			Rooms:     []models.Room{{ID: "r1", Type: "standard", Description: "Garden view", Price: 120}, {ID: "r2", Type: "suite", Description: "Ocean suite", Price: 400}},
			Rating:    models.Rating{Average: 4.6, Count: 10},
			Featured:  true,
			CreatedAt: base,
		},
		{
			ID: "h2", Name: "Dragon Bridge Hotel", Description: "City centre",
			Location:  models.Location{City: "Đà Nẵng", Country: "Vietnam"},
			Amenities: []models.Amenity{{Name: "wifi"}},
			Rooms:     []models.Room{{ID: "r3", Type: "deluxe", Description: "River view", Price: 90}},
			Rating:    models.Rating{Average: 4.1, Count: 3},
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "h3", Name: "Old Quarter Inn", Description: "Heritage house",
			Location:  models.Location{City: "Ha Noi", Country: "Vietnam"},
			Rating:    models.Rating{Average: 3.9},
			CreatedAt: base.Add(48 * time.Hour),
		},
	}
}

func ids(hotels []models.Hotel) []string {
	out := make([]string, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, h.ID)
	}
	return out
}

func TestSearchDefaultsToNewestFirst(t *testing.T) {
	res := Search(catalogFixture(), SearchSpec{})
	assert.Equal(t, []string{"h3", "h2", "h1"}, ids(res.Items))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Suggestions)
}

func TestSearchFilters(t *testing.T) {
	cases := []struct {
		name string
		spec SearchSpec
		want []string
	}{
		{"city ignores accents", SearchSpec{City: "da nang"}, []string{"h2"}},
		{"price range needs one room inside", SearchSpec{MinPrice: ptr(100.0), MaxPrice: ptr(150.0)}, []string{"h1"}},
		{"max price only", SearchSpec{MaxPrice: ptr(95.0)}, []string{"h2"}},
		{"min rating", SearchSpec{MinRating: ptr(4.5)}, []string{"h1"}},
		{"all amenities required", SearchSpec{Amenities: []string{"wifi", "POOL"}}, []string{"h1"}},
		{"amenity case-insensitive", SearchSpec{Amenities: []string{"WIFI"}}, []string{"h2", "h1"}},
		{"featured", SearchSpec{Featured: ptr(true)}, []string{"h1"}},
		{"not featured", SearchSpec{Featured: ptr(false)}, []string{"h3", "h2"}},
		{"free text on description", SearchSpec{Query: "heritage"}, []string{"h3"}},
		{"free text on name", SearchSpec{Query: "DRAGON"}, []string{"h2"}},
		{"free text on city", SearchSpec{Query: "nha trang"}, []string{"h1"}},
		{"free text on country", SearchSpec{Query: "vietnam"}, []string{"h3", "h2", "h1"}},
		{"inverted price range", SearchSpec{MinPrice: ptr(500.0), MaxPrice: ptr(100.0)}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Search(catalogFixture(), tc.spec)
			assert.Equal(t, tc.want, ids(res.Items))
			assert.Equal(t, len(tc.want), res.Total)
		})
	}
}

func TestSearchSorting(t *testing.T) {
	res := Search(catalogFixture(), SearchSpec{SortBy: SortByPrice, SortOrder: "asc"})
	assert.Equal(t, []string{"h2", "h1", "h3"}, ids(res.Items), "hotels without rooms go last")

	res = Search(catalogFixture(), SearchSpec{SortBy: SortByPrice, SortOrder: "desc"})
	assert.Equal(t, []string{"h1", "h2", "h3"}, ids(res.Items))

	res = Search(catalogFixture(), SearchSpec{SortBy: SortByRating})
	assert.Equal(t, []string{"h1", "h2", "h3"}, ids(res.Items))

	res = Search(catalogFixture(), SearchSpec{SortBy: "unknown", SortOrder: "asc"})
	assert.Equal(t, []string{"h1", "h2", "h3"}, ids(res.Items))
}

func TestSearchPaging(t *testing.T) {
	res := Search(catalogFixture(), SearchSpec{Page: 2, Limit: 2})
	assert.Equal(t, []string{"h1"}, ids(res.Items))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Pages)

	res = Search(catalogFixture(), SearchSpec{Page: 5, Limit: 2})
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.Total)
}

func TestSearchPagesCoverTotal(t *testing.T) {
	first := Search(catalogFixture(), SearchSpec{Limit: 2})
	require.Equal(t, 2, first.Pages)

	seen := []string{}
	for page := 1; page <= first.Pages; page++ {
		res := Search(catalogFixture(), SearchSpec{Page: page, Limit: 2})
		assert.Equal(t, first.Total, res.Total)
		seen = append(seen, ids(res.Items)...)
	}
	assert.Len(t, seen, first.Total)
	assert.ElementsMatch(t, []string{"h1", "h2", "h3"}, seen)
}

func TestSearchHugePageIsEmpty(t *testing.T) {
	var res SearchResult
	require.NotPanics(t, func() {
		res = Search(catalogFixture(), SearchSpec{Page: math.MaxInt, Limit: 100})
	})
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Pages)
}

func TestNormalizePaging(t *testing.T) {
	page, limit := NormalizePaging(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	_, limit = NormalizePaging(1, 1000)
	assert.Equal(t, 100, limit)
}

func TestSearchSuggestsCities(t *testing.T) {
	res := Search(catalogFixture(), SearchSpec{City: "Nha Trng"})
	assert.Zero(t, res.Total)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Nha Trang", res.Suggestions[0])
	assert.LessOrEqual(t, len(res.Suggestions), 3)

	res = Search(catalogFixture(), SearchSpec{City: "Nha", MinRating: ptr(5.0)})
	assert.Zero(t, res.Total)
	assert.NotContains(t, res.Suggestions, "Ha Noi")
}

func TestSuggestCitiesNoMatch(t *testing.T) {
	assert.Empty(t, SuggestCities(catalogFixture(), "zzzzzzzzzzzz"))
	assert.Empty(t, SuggestCities(nil, "hanoi"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("hue", "hue"))
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Less(t, calculateSimilarity("hue", "saigon"), suggestionThreshold)
}

func TestSearchRooms(t *testing.T) {
	matches := SearchRooms(catalogFixture(), RoomQuery{Term: "view"})
	require.Len(t, matches, 2)
	assert.Equal(t, "r1", matches[0].Room.ID)
	assert.Equal(t, "Seaside Resort", matches[0].HotelName)

	matches = SearchRooms(catalogFixture(), RoomQuery{Type: "SUITE"})
	require.Len(t, matches, 1)
	assert.Equal(t, "r2", matches[0].Room.ID)

	matches = SearchRooms(catalogFixture(), RoomQuery{MaxPrice: ptr(100.0)})
	require.Len(t, matches, 1)
	assert.Equal(t, "r3", matches[0].Room.ID)
}

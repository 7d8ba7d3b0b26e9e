package services

import (
	"math"
	"sort"
	"strings"

	"luxestay/constants"
	"luxestay/models"

	unidecode "github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByRating    = "rating"

	maxSuggestions      = 3
	suggestionThreshold = 0.4
)

// SearchSpec là bộ lọc đã parse từ query string. Con trỏ nil nghĩa là không lọc
type SearchSpec struct {
	City      string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Amenities []string
	Featured  *bool
	Query     string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type SearchResult struct {
	Items       []models.Hotel `json:"items"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	Pages       int            `json:"pages"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// normalizeInput bỏ dấu, chữ thường, cắt khoảng trắng
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(normalizeInput(haystack), needle)
}

// NormalizePaging: page < 1 thành 1, limit < 1 thành mặc định, tối đa MaxPageLimit
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}
	return page, limit
}

func requiredAmenities(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// hasRoomInRange: có ít nhất một phòng giá nằm trong [min, max]
func hasRoomInRange(h *models.Hotel, min, max *float64) bool {
	for _, r := range h.Rooms {
		if min != nil && r.Price < *min {
			continue
		}
		if max != nil && r.Price > *max {
			continue
		}
		return true
	}
	return false
}

type hotelMatcher struct {
	city      string
	query     string
	amenities []string
	spec      SearchSpec
}

func newHotelMatcher(spec SearchSpec) hotelMatcher {
	return hotelMatcher{
		city:      normalizeInput(spec.City),
		query:     normalizeInput(spec.Query),
		amenities: requiredAmenities(spec.Amenities),
		spec:      spec,
	}
}

func (m hotelMatcher) match(h *models.Hotel) bool {
	if m.city != "" && !containsFold(h.Location.City, m.city) {
		return false
	}
	if (m.spec.MinPrice != nil || m.spec.MaxPrice != nil) && !hasRoomInRange(h, m.spec.MinPrice, m.spec.MaxPrice) {
		return false
	}
	if m.spec.MinRating != nil && h.Rating.Average < *m.spec.MinRating {
		return false
	}
	if len(m.amenities) > 0 {
		have := h.AmenityNames()
		for _, name := range m.amenities {
			if _, ok := have[name]; !ok {
				return false
			}
		}
	}
	if m.spec.Featured != nil && h.Featured != *m.spec.Featured {
		return false
	}
	if m.query != "" &&
		!containsFold(h.Name, m.query) &&
		!containsFold(h.Description, m.query) &&
		!containsFold(h.Location.City, m.query) &&
		!containsFold(h.Location.Country, m.query) {
		return false
	}
	return true
}

// Search lọc catalog theo SearchSpec, sắp xếp rồi phân trang. Total được đếm trước khi cắt trang
func Search(catalog []models.Hotel, spec SearchSpec) SearchResult {
	page, limit := NormalizePaging(spec.Page, spec.Limit)
	result := SearchResult{Items: []models.Hotel{}, Page: page, Limit: limit}

	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		return result
	}

	matcher := newHotelMatcher(spec)
	matched := make([]models.Hotel, 0, len(catalog))
	for i := range catalog {
		if matcher.match(&catalog[i]) {
			matched = append(matched, catalog[i])
		}
	}

	sortHotels(matched, spec.SortBy, spec.SortOrder)

	result.Total = len(matched)
	result.Pages = int(math.Ceil(float64(result.Total) / float64(limit)))

	// so sánh số trang trước khi nhân để page quá lớn không tràn số
	if page-1 < result.Pages {
		start := (page - 1) * limit
		end := start + limit
		if end > len(matched) {
			end = len(matched)
		}
		result.Items = matched[start:end]
	}

	if result.Total == 0 && strings.TrimSpace(spec.City) != "" {
		result.Suggestions = SuggestCities(catalog, spec.City)
	}
	return result
}

// sortHotels: mặc định createdAt desc; theo giá thì khách sạn không có phòng luôn đứng cuối; hòa thì id tăng dần
func sortHotels(hotels []models.Hotel, sortBy, sortOrder string) {
	desc := !strings.EqualFold(sortOrder, "asc")
	if sortBy != SortByPrice && sortBy != SortByRating {
		sortBy = SortByCreatedAt
	}

	sort.SliceStable(hotels, func(i, j int) bool {
		a, b := &hotels[i], &hotels[j]
		var cmp int
		switch sortBy {
		case SortByPrice:
			pa, okA := a.LowestPrice()
			pb, okB := b.LowestPrice()
			switch {
			case !okA && !okB:
				cmp = 0
			case !okA:
				return false
			case !okB:
				return true
			default:
				cmp = compareFloat(pa, pb)
			}
		case SortByRating:
			cmp = compareFloat(a.Rating.Average, b.Rating.Average)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// calculateSimilarity tính độ tương đồng giữa hai chuỗi theo khoảng cách Levenshtein
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// SuggestCities trả về tối đa 3 tên thành phố gần với input nhất
func SuggestCities(catalog []models.Hotel, input string) []string {
	needle := normalizeInput(input)
	if needle == "" {
		return nil
	}

	display := make(map[string]string)
	keys := make([]string, 0)
	for _, h := range catalog {
		city := strings.TrimSpace(h.Location.City)
		key := normalizeInput(city)
		if key == "" {
			continue
		}
		if _, ok := display[key]; !ok {
			display[key] = city
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	matcher := closestmatch.New(keys, []int{2, 3})
	candidates := matcher.ClosestN(needle, len(keys))

	type scored struct {
		key   string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if s := calculateSimilarity(needle, c); s >= suggestionThreshold {
			ranked = append(ranked, scored{key: c, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score == ranked[j].score {
			return ranked[i].key < ranked[j].key
		}
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranked {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, display[r.key])
	}
	return out
}

// RoomQuery lọc phòng trên toàn catalog
type RoomQuery struct {
	Term     string
	Type     string
	MaxPrice *float64
}

type RoomMatch struct {
	HotelID   string      `json:"hotelId"`
	HotelName string      `json:"hotelName"`
	City      string      `json:"city"`
	Room      models.Room `json:"room"`
}

// SearchRooms tìm phòng có type hoặc description chứa term (không phân biệt hoa thường)
func SearchRooms(catalog []models.Hotel, q RoomQuery) []RoomMatch {
	term := normalizeInput(q.Term)
	roomType := strings.ToLower(strings.TrimSpace(q.Type))

	matches := []RoomMatch{}
	for _, h := range catalog {
		for _, r := range h.Rooms {
			if term != "" && !containsFold(r.Type, term) && !containsFold(r.Description, term) {
				continue
			}
			if roomType != "" && strings.ToLower(r.Type) != roomType {
				continue
			}
			if q.MaxPrice != nil && r.Price > *q.MaxPrice {
				continue
			}
			matches = append(matches, RoomMatch{
				HotelID:   h.ID,
				HotelName: h.Name,
				City:      h.Location.City,
				Room:      r,
			})
		}
	}
	return matches
}

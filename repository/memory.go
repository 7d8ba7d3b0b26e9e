package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"luxestay/errors"
	"luxestay/models"
)

// NewMemoryStore tạo store trong bộ nhớ, dùng cho test và STORE=memory
func NewMemoryStore() *Store {
	return &Store{
		Hotels:   NewMemoryHotelRepository(),
		Bookings: NewMemoryBookingRepository(),
		Users:    NewMemoryUserRepository(),
		Contacts: NewMemoryContactRepository(),
	}
}

func cloneHotel(h models.Hotel) models.Hotel {
	h.Images = append([]models.HotelImage(nil), h.Images...)
	h.Amenities = append([]models.Amenity(nil), h.Amenities...)
	h.Reviews = append([]models.Review(nil), h.Reviews...)
	rooms := make([]models.Room, len(h.Rooms))
	for i, r := range h.Rooms {
		r.Images = append([]string(nil), r.Images...)
		r.Amenities = append([]string(nil), r.Amenities...)
		rooms[i] = r
	}
	h.Rooms = rooms
	return h
}

type memoryHotelRepository struct {
	mu     sync.RWMutex
	hotels map[string]models.Hotel
	order  []string
}

func NewMemoryHotelRepository() HotelRepository {
	return &memoryHotelRepository{hotels: make(map[string]models.Hotel)}
}

func (r *memoryHotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hotels[hotel.ID]; ok {
		return errors.ErrDuplicate
	}
	now := time.Now().UTC()
	if hotel.CreatedAt.IsZero() {
		hotel.CreatedAt = now
	}
	hotel.UpdatedAt = now
	for i := range hotel.Rooms {
		hotel.Rooms[i].HotelID = hotel.ID
	}
	r.hotels[hotel.ID] = cloneHotel(*hotel)
	r.order = append(r.order, hotel.ID)
	return nil
}

func (r *memoryHotelRepository) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hotels[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	c := cloneHotel(h)
	return &c, nil
}

func (r *memoryHotelRepository) list(keep func(models.Hotel) bool) []models.Hotel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Hotel, 0, len(r.order))
	for _, id := range r.order {
		h := r.hotels[id]
		if keep(h) {
			out = append(out, cloneHotel(h))
		}
	}
	return out
}

func (r *memoryHotelRepository) ListActive(ctx context.Context) ([]models.Hotel, error) {
	return r.list(func(h models.Hotel) bool { return h.IsActive }), nil
}

func (r *memoryHotelRepository) ListAll(ctx context.Context) ([]models.Hotel, error) {
	return r.list(func(models.Hotel) bool { return true }), nil
}

func (r *memoryHotelRepository) ListFeatured(ctx context.Context, limit int) ([]models.Hotel, error) {
	hotels := r.list(func(h models.Hotel) bool { return h.IsActive && h.Featured })
	sort.SliceStable(hotels, func(i, j int) bool {
		return hotels[i].Rating.Average > hotels[j].Rating.Average
	})
	if limit > 0 && len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels, nil
}

func (r *memoryHotelRepository) FindRoom(ctx context.Context, roomID string) (*models.Hotel, *models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		h := cloneHotel(r.hotels[id])
		if room, ok := h.FindRoom(roomID); ok {
			return &h, room, nil
		}
	}
	return nil, nil, errors.ErrNotFound
}

func (r *memoryHotelRepository) AddReview(ctx context.Context, hotelID string, review models.Review) (*models.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hotels[hotelID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if h.HasReviewFrom(review.UserID) {
		return nil, errors.ErrDuplicate
	}
	h = cloneHotel(h)
	review.ID = uint(len(h.Reviews) + 1)
	review.HotelID = hotelID
	h.AddReview(review)
	h.UpdatedAt = time.Now().UTC()
	r.hotels[hotelID] = h
	c := cloneHotel(h)
	return &c, nil
}

func (r *memoryHotelRepository) AddImages(ctx context.Context, hotelID string, images []models.HotelImage) (*models.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hotels[hotelID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	h = cloneHotel(h)
	h.Images = append(h.Images, images...)
	h.UpdatedAt = time.Now().UTC()
	r.hotels[hotelID] = h
	c := cloneHotel(h)
	return &c, nil
}

func (r *memoryHotelRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.hotels)), nil
}

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{bookings: make(map[string]models.Booking)}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; ok {
		return errors.ErrDuplicate
	}
	// Giống exclusion constraint của postgres
	if booking.IsActive() {
		for _, b := range r.bookings {
			if b.RoomID == booking.RoomID && b.IsActive() && b.Overlaps(booking.CheckIn, booking.CheckOut) {
				return errors.ErrOverlap
			}
		}
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &b, nil
}

func newestFirst(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func (r *memoryBookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *memoryBookingRepository) ListActiveByRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if !from.IsZero() && !b.CheckOut.After(from) {
			continue
		}
		if !to.IsZero() && !b.CheckIn.Before(to) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (r *memoryBookingRepository) UpdateStatus(ctx context.Context, id, from, to string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if b.Status != from {
		return nil, errors.ErrStatusChanged
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return &b, nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryBookingRepository) List(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	r.mu.RLock()
	all := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		all = append(all, b)
	}
	r.mu.RUnlock()

	newestFirst(all)
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *memoryBookingRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]models.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return errors.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *memoryUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	r.mu.RLock()
	out := []models.User{}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ExcludeRole != "" && u.Role == filter.ExcludeRole {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type memoryContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]models.ContactSubmission
}

func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{contacts: make(map[string]models.ContactSubmission)}
}

func (r *memoryContactRepository) Create(ctx context.Context, contact *models.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	r.contacts[contact.ID] = *contact
	return nil
}

func (r *memoryContactRepository) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &c, nil
}

func (r *memoryContactRepository) Update(ctx context.Context, contact *models.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; !ok {
		return errors.ErrNotFound
	}
	contact.UpdatedAt = time.Now().UTC()
	r.contacts[contact.ID] = *contact
	return nil
}

var priorityRank = map[string]int{"low": 0, "medium": 1, "high": 2, "urgent": 3}

func (r *memoryContactRepository) List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error) {
	r.mu.RLock()
	out := []models.ContactSubmission{}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, c := range r.contacts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) &&
			!strings.Contains(strings.ToLower(c.Subject), search) &&
			!strings.Contains(strings.ToLower(c.Message), search) {
			continue
		}
		out = append(out, c)
	}
	r.mu.RUnlock()

	asc := strings.EqualFold(filter.SortOrder, "asc")
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "priority":
			if priorityRank[out[i].Priority] == priorityRank[out[j].Priority] {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			less = priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
		case "status":
			if out[i].Status == out[j].Status {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			less = out[i].Status < out[j].Status
		default:
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return false
			}
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *memoryContactRepository) StatusStats(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := make(map[string]int64)
	for _, c := range r.contacts {
		stats[c.Status]++
	}
	return stats, nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := offset(page, limit)
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

package repository

import (
	"context"
	"math"
	"time"

	"luxestay/models"
)

// HotelRepository lưu khách sạn cùng phòng, tiện ích và đánh giá
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	// ListActive trả về toàn bộ khách sạn đang hoạt động, đủ rooms và amenities
	ListActive(ctx context.Context) ([]models.Hotel, error)
	ListAll(ctx context.Context) ([]models.Hotel, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Hotel, error)
	// FindRoom trả về phòng và khách sạn chứa nó
	FindRoom(ctx context.Context, roomID string) (*models.Hotel, *models.Room, error)
	// AddReview thêm đánh giá và cập nhật rating trong cùng một thao tác.
	// Trả về ErrDuplicate nếu user đã đánh giá khách sạn này.
	AddReview(ctx context.Context, hotelID string, review models.Review) (*models.Hotel, error)
	AddImages(ctx context.Context, hotelID string, images []models.HotelImage) (*models.Hotel, error)
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	// Create trả về ErrOverlap nếu store tự phát hiện trùng lịch
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser sắp xếp mới nhất trước
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListActiveByRoom trả về booking pending/confirmed của phòng giao với [from, to).
	// from/to zero thì không giới hạn.
	ListActiveByRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.Booking, error)
	// UpdateStatus chỉ ghi khi status hiện tại bằng from, ngược lại trả về ErrStatusChanged
	UpdateStatus(ctx context.Context, id, from, to string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, limit int) ([]models.Booking, int64, error)
	Count(ctx context.Context) (int64, error)
}

type UserFilter struct {
	Role        string
	ExcludeRole string
	Search      string
	Page        int
	Limit       int
}

type UserRepository interface {
	// Create trả về ErrDuplicate khi email đã tồn tại
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type ContactFilter struct {
	Status    string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ContactRepository interface {
	Create(ctx context.Context, contact *models.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*models.ContactSubmission, error)
	Update(ctx context.Context, contact *models.ContactSubmission) error
	List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error)
	// StatusStats đếm số submission theo status
	StatusStats(ctx context.Context) (map[string]int64, error)
}

// Store gom các repository của một backend
type Store struct {
	Hotels   HotelRepository
	Bookings BookingRepository
	Users    UserRepository
	Contacts ContactRepository
}

// offset bão hòa ở math.MaxInt khi (page-1)*limit tràn số
func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	if limit > 0 && page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

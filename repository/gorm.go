package repository

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// NewGormStore tạo store dựa trên postgres
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Hotels:   &gormHotelRepository{db: db},
		Bookings: &gormBookingRepository{db: db},
		Users:    &gormUserRepository{db: db},
		Contacts: &gormContactRepository{db: db},
	}
}

// translate chuyển lỗi gorm/pg sang lỗi của repository
func translate(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.ErrDuplicate
		case pgExclusionViolation:
			return errors.ErrOverlap
		}
	}
	return err
}

type gormHotelRepository struct {
	db *gorm.DB
}

func (r *gormHotelRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images").
		Preload("Amenities").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("price ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

func (r *gormHotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	return translate(r.db.WithContext(ctx).Create(hotel).Error)
}

func (r *gormHotelRepository) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.preload(ctx).First(&hotel, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &hotel, nil
}

func (r *gormHotelRepository) ListActive(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.preload(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&hotels).Error
	return hotels, translate(err)
}

func (r *gormHotelRepository) ListAll(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.preload(ctx).Order("created_at DESC").Find(&hotels).Error
	return hotels, translate(err)
}

func (r *gormHotelRepository) ListFeatured(ctx context.Context, limit int) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.preload(ctx).
		Where("is_active = ? AND featured = ?", true, true).
		Order("rating_average DESC").
		Limit(limit).
		Find(&hotels).Error
	return hotels, translate(err)
}

func (r *gormHotelRepository) FindRoom(ctx context.Context, roomID string) (*models.Hotel, *models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", roomID).Error; err != nil {
		return nil, nil, translate(err)
	}
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, "id = ?", room.HotelID).Error; err != nil {
		return nil, nil, translate(err)
	}
	return &hotel, &room, nil
}

func (r *gormHotelRepository) AddReview(ctx context.Context, hotelID string, review models.Review) (*models.Hotel, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hotel models.Hotel
		// Khóa dòng hotel để tính lại rating tuần tự
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hotel, "id = ?", hotelID).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", hotelID).Order("created_at ASC").Find(&hotel.Reviews).Error; err != nil {
			return err
		}
		if hotel.HasReviewFrom(review.UserID) {
			return errors.ErrDuplicate
		}

		review.HotelID = hotelID
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		hotel.AddReview(review)
		return tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Updates(map[string]interface{}{
			"rating_average": hotel.Rating.Average,
			"rating_count":   hotel.Rating.Count,
			"updated_at":     time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, hotelID)
}

func (r *gormHotelRepository) AddImages(ctx context.Context, hotelID string, images []models.HotelImage) (*models.Hotel, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.ErrNotFound
		}
		for i := range images {
			images[i].HotelID = hotelID
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, hotelID)
}

func (r *gormHotelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).Count(&count).Error
	return count, translate(err)
}

type gormBookingRepository struct {
	db *gorm.DB
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *gormBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *gormBookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	return bookings, translate(err)
}

func (r *gormBookingRepository) ListActiveByRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, constants.ActiveBookingStatuses)
	if !from.IsZero() {
		query = query.Where("check_out > ?", from)
	}
	if !to.IsZero() {
		query = query.Where("check_in < ?", to)
	}
	var bookings []models.Booking
	err := query.Order("check_in ASC").Find(&bookings).Error
	return bookings, translate(err)
}

func (r *gormBookingRepository) UpdateStatus(ctx context.Context, id, from, to string) (*models.Booking, error) {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, errors.ErrStatusChanged
	}
	return r.GetByID(ctx, id)
}

func (r *gormBookingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *gormBookingRepository) List(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var bookings []models.Booking
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Offset(offset(page, limit)).Limit(limit)
	}
	err := query.Find(&bookings).Error
	return bookings, total, translate(err)
}

func (r *gormBookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, translate(err)
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.ExcludeRole != "" {
		query = query.Where("role <> ?", filter.ExcludeRole)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if filter.Limit > 0 {
		query = query.Offset(offset(filter.Page, filter.Limit)).Limit(filter.Limit)
	}
	var users []models.User
	err := query.Order("created_at DESC").Find(&users).Error
	return users, total, translate(err)
}

func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit("created_at").Updates(user)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var count int64
	err := query.Count(&count).Error
	return count, translate(err)
}

type gormContactRepository struct {
	db *gorm.DB
}

func (r *gormContactRepository) Create(ctx context.Context, contact *models.ContactSubmission) error {
	return translate(r.db.WithContext(ctx).Create(contact).Error)
}

func (r *gormContactRepository) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	var contact models.ContactSubmission
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func (r *gormContactRepository) Update(ctx context.Context, contact *models.ContactSubmission) error {
	res := r.db.WithContext(ctx).Model(contact).Select("*").Omit("created_at").Updates(contact)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

var contactSortColumns = map[string]string{
	"createdAt": "created_at",
	"priority":  "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 ELSE 3 END",
	"status":    "status",
}

func (r *gormContactRepository) List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactSubmission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	column, ok := contactSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Offset(offset(filter.Page, filter.Limit)).Limit(filter.Limit)
	}

	var contacts []models.ContactSubmission
	err := query.Find(&contacts).Error
	return contacts, total, translate(err)
}

func (r *gormContactRepository) StatusStats(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

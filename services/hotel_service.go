package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"luxestay/constants"
	"luxestay/dto"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/services/logger"
	"luxestay/types"
)

type HotelService struct {
	hotels   repository.HotelRepository
	uploader ImageUploader
	logger   logger.Logger
}

// NewHotelService nhận uploader có thể nil khi chưa cấu hình Cloudinary
func NewHotelService(hotels repository.HotelRepository, uploader ImageUploader, log logger.Logger) *HotelService {
	return &HotelService{hotels: hotels, uploader: uploader, logger: log}
}

// catalog là tập khách sạn đang hoạt động, đọc thẳng từ store mỗi lần
func (s *HotelService) catalog(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.hotels.ListActive(ctx)
	if err != nil {
		s.logger.Error("load hotel catalog: %v", err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch hotels", err)
	}
	return hotels, nil
}

// Search chạy bộ lọc trên các khách sạn đang hoạt động
func (s *HotelService) Search(ctx context.Context, spec SearchSpec) (SearchResult, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return Search(catalog, spec), nil
}

func (s *HotelService) SearchRooms(ctx context.Context, q RoomQuery) ([]RoomMatch, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return SearchRooms(catalog, q), nil
}

func (s *HotelService) Featured(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.hotels.ListFeatured(ctx, constants.FeaturedLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch featured hotels", err)
	}
	return hotels, nil
}

// GetHotel ẩn khách sạn ngừng hoạt động với người không phải admin
func (s *HotelService) GetHotel(ctx context.Context, id string, actor types.Actor) (*models.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("Hotel")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch hotel", err)
	}
	if !hotel.IsActive && !actor.IsAdmin() {
		return nil, errors.NewNotFound("Hotel")
	}
	return hotel, nil
}

func (s *HotelService) ListAll(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.hotels.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch hotels", err)
	}
	return hotels, nil
}

func (s *HotelService) CreateHotel(ctx context.Context, req dto.CreateHotelRequest) (*models.Hotel, error) {
	hotel := req.ToModel()
	if err := s.hotels.Create(ctx, hotel); err != nil {
		s.logger.Error("create hotel %q: %v", req.Name, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create hotel", err)
	}
	s.logger.Info("hotel %s created: %s", hotel.ID, hotel.Name)
	return hotel, nil
}

// AddReview thêm đánh giá, mỗi user chỉ được đánh giá một lần
func (s *HotelService) AddReview(ctx context.Context, hotelID string, actor types.Actor, req dto.ReviewRequest) (*models.Hotel, error) {
	if actor.UserID == "" {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Not authorized", nil)
	}
	if _, err := s.GetHotel(ctx, hotelID, actor); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: time.Now().UTC(),
	}
	hotel, err := s.hotels.AddReview(ctx, hotelID, review)
	switch {
	case stderrors.Is(err, errors.ErrDuplicate):
		return nil, errors.NewAppError(errors.ErrCodeAlreadyExists, "You have already reviewed this hotel", nil)
	case stderrors.Is(err, errors.ErrNotFound):
		return nil, errors.NewNotFound("Hotel")
	case err != nil:
		s.logger.Error("add review to hotel %s: %v", hotelID, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to add review", err)
	}
	return hotel, nil
}

// UploadImages đẩy từng ảnh lên storage rồi gắn vào khách sạn
func (s *HotelService) UploadImages(ctx context.Context, hotelID string, files []ImageFile) (*models.Hotel, error) {
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Image upload is not configured", nil)
	}
	if len(files) == 0 {
		return nil, errors.NewValidationError(errors.FieldError{Field: "files", Message: "At least one image is required"})
	}
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("Hotel")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch hotel", err)
	}

	images := make([]models.HotelImage, 0, len(files))
	for _, f := range files {
		url, err := s.uploader.Upload(ctx, f)
		if err != nil {
			s.logger.Error("upload image for hotel %s: %v", hotelID, err)
			return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Failed to upload image", err)
		}
		images = append(images, models.HotelImage{URL: url, Alt: hotel.Name})
	}

	updated, err := s.hotels.AddImages(ctx, hotelID, images)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to save images", err)
	}
	return updated, nil
}

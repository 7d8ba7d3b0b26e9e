package services

import (
	"context"

	"luxestay/constants"
	"luxestay/dto"
	"luxestay/errors"
	"luxestay/repository"
)

type AdminService struct {
	store *repository.Store
}

func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

// Overview gom số liệu tổng quan và các booking mới nhất
func (s *AdminService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	wrap := func(err error) error {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to load overview", err)
	}

	users, err := s.store.Users.CountByRole(ctx, "")
	if err != nil {
		return nil, wrap(err)
	}
	operators, err := s.store.Users.CountByRole(ctx, constants.RoleHotel)
	if err != nil {
		return nil, wrap(err)
	}
	hotels, err := s.store.Hotels.Count(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	bookings, err := s.store.Bookings.Count(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	latest, _, err := s.store.Bookings.List(ctx, 1, constants.LatestBookings)
	if err != nil {
		return nil, wrap(err)
	}

	return &dto.OverviewResponse{
		TotalUsers:     users,
		TotalHotels:    hotels,
		HotelOperators: operators,
		TotalBookings:  bookings,
		LatestBookings: latest,
	}, nil
}

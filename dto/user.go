package dto

import "luxestay/models"

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user hotel admin"`
}

// OverviewResponse là số liệu tổng quan cho trang admin
type OverviewResponse struct {
	TotalUsers     int64            `json:"totalUsers"`
	TotalHotels    int64            `json:"totalHotels"`
	HotelOperators int64            `json:"hotelOperators"`
	TotalBookings  int64            `json:"totalBookings"`
	LatestBookings []models.Booking `json:"latestBookings"`
}

package types

import "luxestay/constants"

// Actor là người dùng đã xác thực, lấy từ token
type Actor struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a Actor) IsHotelOperator() bool {
	return a.Role == constants.RoleHotel
}

// CanManageBookings cho biết actor có quyền xác nhận/hủy booking của khách hay không
func (a Actor) CanManageBookings() bool {
	return a.IsAdmin() || a.IsHotelOperator()
}

package dto

import "luxestay/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CompanyAddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type CompanyRequest struct {
	Name               string                 `json:"name" validate:"omitempty,max=100"`
	Phone              string                 `json:"phone"`
	Website            string                 `json:"website" validate:"omitempty,url"`
	RegistrationNumber string                 `json:"registrationNumber"`
	Address            *CompanyAddressRequest `json:"address"`
}

func (c *CompanyRequest) ToModel() *models.Company {
	if c == nil {
		return nil
	}
	company := &models.Company{
		Name:               c.Name,
		Phone:              c.Phone,
		Website:            c.Website,
		RegistrationNumber: c.RegistrationNumber,
	}
	if a := c.Address; a != nil {
		company.Address = &models.CompanyAddress{
			Street:  a.Street,
			City:    a.City,
			State:   a.State,
			ZipCode: a.ZipCode,
			Country: a.Country,
		}
	}
	return company
}

// HotelRegisterRequest là DTO đăng ký tài khoản khách sạn
type HotelRegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=80"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Company  *CompanyRequest `json:"company"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

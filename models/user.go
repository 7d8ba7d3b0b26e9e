package models

import (
	"time"
)

type CompanyAddress struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// Company chỉ dùng cho tài khoản khách sạn
type Company struct {
	Name               string          `json:"name,omitempty" bson:"name,omitempty"`
	Phone              string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Website            string          `json:"website,omitempty" bson:"website,omitempty"`
	RegistrationNumber string          `json:"registrationNumber,omitempty" bson:"registrationNumber,omitempty"`
	Address            *CompanyAddress `json:"address,omitempty" bson:"address,omitempty"`
}

type User struct {
	ID           string     `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name         string     `json:"name" bson:"name" gorm:"size:80"`
	Email        string     `json:"email" bson:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	Role         string     `json:"role" bson:"role" gorm:"size:10;index"`
	Avatar       string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Company      *Company   `json:"company,omitempty" bson:"company,omitempty" gorm:"serializer:json;type:jsonb"`
	IsActive     bool       `json:"isActive" bson:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime"`
}

package models

import "time"

type ContactResponse struct {
	Message     string    `json:"message" bson:"message"`
	RespondedBy string    `json:"respondedBy" bson:"respondedBy"`
	RespondedAt time.Time `json:"respondedAt" bson:"respondedAt"`
}

// ContactSubmission là tin nhắn gửi từ form liên hệ
type ContactSubmission struct {
	ID               string           `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name             string           `json:"name" bson:"name" gorm:"size:50"`
	Email            string           `json:"email" bson:"email" gorm:"index"`
	Phone            string           `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject          string           `json:"subject" bson:"subject" gorm:"size:100"`
	Message          string           `json:"message" bson:"message" gorm:"size:1000"`
	TargetAdminEmail string           `json:"targetAdminEmail,omitempty" bson:"targetAdminEmail,omitempty"`
	Status           string           `json:"status" bson:"status" gorm:"size:20;index"`
	Priority         string           `json:"priority" bson:"priority" gorm:"size:10"`
	IsRead           bool             `json:"isRead" bson:"isRead"`
	AssignedTo       string           `json:"assignedTo,omitempty" bson:"assignedTo,omitempty" gorm:"type:varchar(36)"`
	Response         *ContactResponse `json:"response,omitempty" bson:"response,omitempty" gorm:"serializer:json;type:jsonb"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName giữ tên bảng ngắn gọn
func (ContactSubmission) TableName() string {
	return "contacts"
}

package dto

import "luxestay/models"

type ContactRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=50"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Subject          string `json:"subject" validate:"required,min=5,max=100"`
	Message          string `json:"message" validate:"required,min=10,max=1000"`
	TargetAdminEmail string `json:"targetAdminEmail" validate:"omitempty,email"`
}

type ContactStatusRequest struct {
	Status     string `json:"status" validate:"omitempty,oneof=new in-progress resolved closed"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo string `json:"assignedTo"`
}

type ContactReplyRequest struct {
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

type ContactListResponse struct {
	Contacts []models.ContactSubmission `json:"contacts"`
	Stats    map[string]int64           `json:"stats"`
}

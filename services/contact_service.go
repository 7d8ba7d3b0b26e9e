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
	"luxestay/services/notification"
	"luxestay/types"

	"github.com/google/uuid"
)

type ContactService struct {
	contacts repository.ContactRepository
	notifier notification.Notifier
	logger   logger.Logger
}

func NewContactService(contacts repository.ContactRepository, notifier notification.Notifier, log logger.Logger) *ContactService {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	return &ContactService{contacts: contacts, notifier: notifier, logger: log}
}

// Submit lưu tin nhắn liên hệ rồi gửi email cho admin và người gửi
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactSubmission, error) {
	contact := &models.ContactSubmission{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(req.Name),
		Email:            normalizeEmail(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Subject:          strings.TrimSpace(req.Subject),
		Message:          strings.TrimSpace(req.Message),
		TargetAdminEmail: normalizeEmail(req.TargetAdminEmail),
		Status:           constants.ContactStatusNew,
		Priority:         constants.PriorityMedium,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Error("save contact from %s: %v", contact.Email, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to submit contact form", err)
	}
	s.notifier.ContactReceived(*contact)
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, filter repository.ContactFilter) (*dto.ContactListResponse, int64, error) {
	filter.Page, filter.Limit = NormalizePaging(filter.Page, filter.Limit)
	contacts, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch contacts", err)
	}
	stats, err := s.contacts.StatusStats(ctx)
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch contact stats", err)
	}
	return &dto.ContactListResponse{Contacts: contacts, Stats: stats}, total, nil
}

func (s *ContactService) load(ctx context.Context, id string) (*models.ContactSubmission, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("Contact submission")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch contact", err)
	}
	return contact, nil
}

// Get đánh dấu đã đọc khi admin mở tin nhắn
func (s *ContactService) Get(ctx context.Context, id string) (*models.ContactSubmission, error) {
	contact, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contact.IsRead {
		contact.IsRead = true
		if err := s.contacts.Update(ctx, contact); err != nil {
			s.logger.Error("mark contact %s read: %v", id, err)
		}
	}
	return contact, nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id string, req dto.ContactStatusRequest) (*models.ContactSubmission, error) {
	contact, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		contact.Status = req.Status
	}
	if req.Priority != "" {
		contact.Priority = req.Priority
	}
	if req.AssignedTo != "" {
		contact.AssignedTo = req.AssignedTo
	}
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update contact", err)
	}
	return contact, nil
}

// Respond lưu phản hồi của admin và chuyển trạng thái sang resolved
func (s *ContactService) Respond(ctx context.Context, id string, actor types.Actor, req dto.ContactReplyRequest) (*models.ContactSubmission, error) {
	contact, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.Response = &models.ContactResponse{
		Message:     strings.TrimSpace(req.Message),
		RespondedBy: actor.UserID,
		RespondedAt: time.Now().UTC(),
	}
	contact.Status = constants.ContactStatusResolved
	contact.IsRead = true
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to save response", err)
	}
	return contact, nil
}

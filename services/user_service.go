package services

import (
	"context"
	stderrors "errors"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/services/logger"
	"luxestay/types"
)

type UserService struct {
	users  repository.UserRepository
	logger logger.Logger
}

type UserServiceOptions struct {
	Users  repository.UserRepository
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		users:  opts.Users,
		logger: opts.Logger,
	}
}

func (s *UserService) getUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("User")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch user", err)
	}
	return user, nil
}

// ListUsers trả về danh sách user đã phân trang cùng tổng số
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	filter.Page, filter.Limit = NormalizePaging(filter.Page, filter.Limit)
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		s.logger.Error("list users: %v", err)
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch users", err)
	}
	return users, total, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, id)
}

// EmailOf cho notification.Dispatcher tra email người nhận
func (s *UserService) EmailOf(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

// admin không được tự khóa, đổi role hay xóa chính mình
func guardSelf(actor types.Actor, targetID, action string) error {
	if actor.UserID == targetID {
		return errors.NewValidationError(errors.FieldError{Field: "id", Message: "You cannot " + action + " your own account"})
	}
	return nil
}

func (s *UserService) UpdateStatus(ctx context.Context, actor types.Actor, id string, isActive bool) (*models.User, error) {
	if err := guardSelf(actor, id, "change the status of"); err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = isActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update user", err)
	}
	s.logger.Info("user %s active=%t by %s", id, isActive, actor.UserID)
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, actor types.Actor, id, role string) (*models.User, error) {
	if !constants.IsValidRole(role) {
		return nil, errors.NewValidationError(errors.FieldError{Field: "role", Message: "Invalid role"})
	}
	if err := guardSelf(actor, id, "change the role of"); err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update user", err)
	}
	s.logger.Info("user %s role=%s by %s", id, role, actor.UserID)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor types.Actor, id string) error {
	if err := guardSelf(actor, id, "delete"); err != nil {
		return err
	}
	err := s.users.Delete(ctx, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return errors.NewNotFound("User")
	}
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete user", err)
	}
	s.logger.Info("user %s deleted by %s", id, actor.UserID)
	return nil
}

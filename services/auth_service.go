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

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type AuthService struct {
	users    repository.UserRepository
	tokens   *TokenManager
	notifier notification.Notifier
	logger   logger.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenManager, notifier notification.Notifier, log logger.Logger) *AuthService {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	return &AuthService{users: users, tokens: tokens, notifier: notifier, logger: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Failed to generate token", err)
	}
	return &dto.AuthResponse{Token: token, User: *user}, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password, role string, company *models.Company) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, errors.NewValidationError(errors.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		Company:      company,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, errors.ErrDuplicate) {
			return nil, errors.NewAppError(errors.ErrCodeAlreadyExists, "User already exists with this email", nil)
		}
		s.logger.Error("create user %s: %v", user.Email, err)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to register user", err)
	}
	return user, nil
}

// Register tạo tài khoản khách với role user
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, constants.RoleUser, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered: %s", user.Email)
	return s.issue(user)
}

// RegisterHotel tạo tài khoản khách sạn và gửi email chào mừng
func (s *AuthService) RegisterHotel(ctx context.Context, req dto.HotelRegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, constants.RoleHotel, req.Company.ToModel())
	if err != nil {
		return nil, err
	}
	s.logger.Info("hotel operator registered: %s", user.Email)
	s.notifier.HotelRegistered(*user)
	return s.issue(user)
}

// Login kiểm tra mật khẩu; requiredRole rỗng thì chấp nhận mọi role
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, requiredRole string) (*dto.AuthResponse, error) {
	invalid := errors.NewAppError(errors.ErrCodeInvalidCredentials, "Invalid credentials", nil)

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to login", err)
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, invalid
	}
	if requiredRole != "" && user.Role != requiredRole {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCredentials, "Invalid credentials or not a hotel account", nil)
	}
	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrCodeAccountDisabled, "Account is deactivated", nil)
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("update last login of %s: %v", user.ID, err)
	}
	return s.issue(user)
}

// Me trả về user hiện tại
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, errors.NewNotFound("User")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to fetch user", err)
	}
	return user, nil
}

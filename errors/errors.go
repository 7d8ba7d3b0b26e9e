package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"

	// Lookup errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Validation errors
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Booking errors
	ErrCodeInvalidRange      ErrorCode = "INVALID_RANGE"
	ErrCodeCapacityExceeded  ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeDateConflict      ErrorCode = "DATE_CONFLICT"
	ErrCodeRoomUnavailable   ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Infrastructure errors
	ErrCodeDBError      ErrorCode = "DB_ERROR"
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
)

// FieldError mô tả lỗi của một trường dữ liệu
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DateRange là khoảng ngày [CheckIn, CheckOut) của booking gây xung đột
type DateRange struct {
	BookingID string    `json:"bookingId"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
}

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code     ErrorCode
	Message  string
	Err      error
	Fields   []FieldError
	Conflict *DateRange
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError gom các lỗi trường thành một AppError
func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewNotFound tạo lỗi không tìm thấy cho một entity
func NewNotFound(entity string) *AppError {
	return NewAppError(ErrCodeNotFound, entity+" not found", nil)
}

// NewDateConflict tạo lỗi trùng lịch kèm khoảng ngày đã bị đặt
func NewDateConflict(conflict DateRange) *AppError {
	return &AppError{
		Code:     ErrCodeDateConflict,
		Message:  "Room is already booked for the selected dates",
		Conflict: &conflict,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra mã lỗi của err
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Repository errors
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("duplicate record")
	ErrOverlap       = errors.New("overlapping booking")
	ErrStatusChanged = errors.New("status changed concurrently")

	// Booking errors
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")
)

package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"luxestay/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Success     bool                `json:"success"`
	Code        string              `json:"code,omitempty"`
	Message     string              `json:"message,omitempty"`
	Data        interface{}         `json:"data,omitempty"`
	Errors      []errors.FieldError `json:"errors,omitempty"`
	Conflict    *errors.DateRange   `json:"conflict,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Pagination  *Pagination         `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage trả về response thành công kèm thông báo
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created trả về 201
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, pages, total, limit int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
			Limit:   limit,
		},
	})
}

// SearchResult giống SuccessWithPagination, thêm gợi ý thành phố khi không có kết quả
func SearchResult(c *gin.Context, data interface{}, page, pages, total, limit int, suggestions []string) {
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        data,
		Suggestions: suggestions,
		Pagination: &Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
			Limit:   limit,
		},
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Message: "Server error",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Not authorized"
	}
	c.JSON(http.StatusUnauthorized, Response{
		Message: message,
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, Response{
		Message: message,
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.JSON(http.StatusNotFound, Response{
		Message: message,
	})
}

// ValidationError trả về danh sách lỗi theo trường
func ValidationError(c *gin.Context, fields []errors.FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Message: "Validation failed",
		Errors:  fields,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Message: message,
	})
}

// Conflict trả về 409
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Message: message,
	})
}

// FromError ánh xạ lỗi của service sang HTTP status
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, Response{Message: "Request timed out"})
			return
		}
		ServerError(c)
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.ErrCodeValidation,
		errors.ErrCodeDateConflict,
		errors.ErrCodeInvalidRange,
		errors.ErrCodeCapacityExceeded,
		errors.ErrCodeRoomUnavailable,
		errors.ErrCodeInvalidTransition:
		status = http.StatusBadRequest
	case errors.ErrCodeUnauthorized,
		errors.ErrCodeInvalidToken,
		errors.ErrCodeInvalidCredentials,
		errors.ErrCodeAccountDisabled:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeAlreadyExists:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		// không lộ chi tiết lỗi hạ tầng ra ngoài
		ServerError(c)
		return
	}
	c.JSON(status, Response{
		Code:     string(appErr.Code),
		Message:  appErr.Message,
		Errors:   appErr.Fields,
		Conflict: appErr.Conflict,
	})
}

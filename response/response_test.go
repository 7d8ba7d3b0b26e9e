package response

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luxestay/errors"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(err error) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, err)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestFromErrorStatus(t *testing.T) {
	cases := []struct {
		code   errors.ErrorCode
		status int
	}{
		{errors.ErrCodeValidation, http.StatusBadRequest},
		{errors.ErrCodeInvalidRange, http.StatusBadRequest},
		{errors.ErrCodeCapacityExceeded, http.StatusBadRequest},
		{errors.ErrCodeDateConflict, http.StatusBadRequest},
		{errors.ErrCodeRoomUnavailable, http.StatusBadRequest},
		{errors.ErrCodeInvalidTransition, http.StatusBadRequest},
		{errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{errors.ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{errors.ErrCodeForbidden, http.StatusForbidden},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeAlreadyExists, http.StatusConflict},
		{errors.ErrCodeDBError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			w, body := render(errors.NewAppError(tc.code, "boom", nil))
			assert.Equal(t, tc.status, w.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestFromErrorHidesInternalDetails(t *testing.T) {
	w, body := render(errors.NewAppError(errors.ErrCodeDBError, "connection refused on 10.0.0.5", fmt.Errorf("dial tcp")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", body.Message)
	assert.Empty(t, body.Code)
}

func TestFromErrorPlainErrors(t *testing.T) {
	w, _ := render(fmt.Errorf("something broke"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, body := render(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "Request timed out", body.Message)
}

func TestFromErrorCarriesFieldsAndConflict(t *testing.T) {
	w, body := render(errors.NewValidationError(
		errors.FieldError{Field: "checkIn", Message: "checkIn is required"},
		errors.FieldError{Field: "guests.adults", Message: "At least 1 adult is required"},
	))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errors.ErrCodeValidation), body.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "guests.adults", body.Errors[1].Field)

	in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)
	w, body = render(errors.NewDateConflict(errors.DateRange{BookingID: "b1", CheckIn: in, CheckOut: out}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, "b1", body.Conflict.BookingID)
	assert.True(t, out.Equal(body.Conflict.CheckOut))
}

func TestSuccessWithPagination(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessWithPagination(c, []string{"a"}, 2, 5, 41, 10)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, Pagination{Current: 2, Pages: 5, Total: 41, Limit: 10}, *body.Pagination)
}

package controllers

import (
	"time"

	"luxestay/dto"
	"luxestay/errors"
	"luxestay/middleware"
	"luxestay/response"
	"luxestay/services"
	"luxestay/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) BookingController {
	return BookingController{bookings: bookings}
}

// parseStay parse checkIn/checkOut, gom lỗi của cả hai trường
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, inErr := validator.ParseDateField("checkIn", checkIn)
	out, outErr := validator.ParseDateField("checkOut", checkOut)

	var fields []errors.FieldError
	if inErr != nil {
		fields = append(fields, *inErr)
	}
	if outErr != nil {
		fields = append(fields, *outErr)
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, errors.NewValidationError(fields...)
	}
	return in, out, nil
}

func (b BookingController) GetMyBookings(c *gin.Context) {
	actor := middleware.GetActor(c)
	bookings, err := b.bookings.ListUserBookings(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, bookings)
}

func (b BookingController) GetBooking(c *gin.Context) {
	booking, err := b.bookings.GetBooking(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (b BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	booking, err := b.bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		UserID:   middleware.GetActor(c).UserID,
		HotelID:  req.HotelID,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests.ToModel(),
		Notes:    req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Booking created successfully", booking)
}

// CheckAvailability kiểm tra thử, không tạo booking
func (b BookingController) CheckAvailability(c *gin.Context) {
	var req dto.AvailabilityCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	availability, err := b.bookings.CheckAvailability(c.Request.Context(), services.AvailabilityRequest{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests.ToModel(),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, availability)
}

func (b BookingController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := b.bookings.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.GetActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking status updated", booking)
}

// CancelBooking xử lý DELETE /bookings/:id, booking được giữ lại với status cancelled
func (b BookingController) CancelBooking(c *gin.Context) {
	booking, err := b.bookings.CancelBooking(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking cancelled successfully", booking)
}

func (b BookingController) RoomCalendar(c *gin.Context) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := validator.ParseDate(raw)
		if err != nil {
			response.FromError(c, errors.NewValidationError(errors.FieldError{Field: "from", Message: "Valid from date is required"}))
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := validator.ParseDate(raw)
		if err != nil {
			response.FromError(c, errors.NewValidationError(errors.FieldError{Field: "to", Message: "Valid to date is required"}))
			return
		}
		to = t
	}

	entries, err := b.bookings.RoomCalendar(c.Request.Context(), c.Param("roomId"), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, entries)
}

func (b BookingController) ListAllBookings(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)
	page, limit = services.NormalizePaging(page, limit)

	bookings, total, err := b.bookings.ListBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, page, totalPages(total, limit), int(total), limit)
}

// DeleteBooking xóa hẳn booking, chỉ admin
func (b BookingController) DeleteBooking(c *gin.Context) {
	if err := b.bookings.DeleteBooking(c.Request.Context(), c.Param("id"), middleware.GetActor(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking deleted successfully", nil)
}

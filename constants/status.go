package constants

// User roles
const (
	RoleUser  = "user"
	RoleHotel = "hotel"
	RoleAdmin = "admin"
)

// Booking status
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Room types
const (
	RoomTypeStandard     = "standard"
	RoomTypeDeluxe       = "deluxe"
	RoomTypeSuite        = "suite"
	RoomTypePresidential = "presidential"
)

// Contact submission status
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in-progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"
)

// Contact submission priority
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Hotel policy defaults
const (
	DefaultCheckInTime  = "3:00 PM"
	DefaultCheckOutTime = "11:00 AM"
	DefaultCancellation = "Free cancellation up to 24 hours before check-in"
)

// Search paging
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	FeaturedLimit    = 6
	LatestBookings   = 10
)

// ActiveBookingStatuses are the statuses that hold a room.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleHotel || role == RoleAdmin
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"luxestay/constants"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/services/logger"
	"luxestay/types"

	"github.com/stretchr/testify/require"
)

var (
	guest    = types.Actor{UserID: "guest-1", Role: constants.RoleUser}
	stranger = types.Actor{UserID: "guest-2", Role: constants.RoleUser}
	operator = types.Actor{UserID: "hotel-1", Role: constants.RoleHotel}
	admin    = types.Actor{UserID: "admin-1", Role: constants.RoleAdmin}
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedHotel(t *testing.T, store *repository.Store) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{
		ID:       "hotel-1",
		Name:     "Seaside Resort",
		Location: models.Location{City: "Nha Trang", Country: "Vietnam"},
		IsActive: true,
		Rooms: []models.Room{
			{ID: "room-std", Type: constants.RoomTypeStandard, Price: 100, Capacity: models.Capacity{Adults: 2, Children: 1}, Available: true},
			{ID: "room-suite", Type: constants.RoomTypeSuite, Price: 250, Capacity: models.Capacity{Adults: 4, Children: 2}, Available: true},
			{ID: "room-closed", Type: constants.RoomTypeDeluxe, Price: 180, Capacity: models.Capacity{Adults: 2}, Available: false},
		},
	}
	require.NoError(t, store.Hotels.Create(context.Background(), hotel))

	inactive := &models.Hotel{
		ID:       "hotel-off",
		Name:     "Closed Inn",
		Location: models.Location{City: "Hue"},
		IsActive: false,
		Rooms:    []models.Room{{ID: "room-off", Type: constants.RoomTypeStandard, Price: 50, Capacity: models.Capacity{Adults: 2}, Available: true}},
	}
	require.NoError(t, store.Hotels.Create(context.Background(), inactive))
	return hotel
}

// recordingNotifier ghi lại sự kiện để kiểm tra
type recordingNotifier struct {
	mu       sync.Mutex
	created  []models.Booking
	changed  []string
	contacts []models.ContactSubmission
	hotels   []models.User
}

func (n *recordingNotifier) BookingCreated(b models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b)
}

func (n *recordingNotifier) BookingStatusChanged(b models.Booking, previous string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, previous+"->"+b.Status)
}

func (n *recordingNotifier) ContactReceived(c models.ContactSubmission) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, c)
}

func (n *recordingNotifier) HotelRegistered(u models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hotels = append(n.hotels, u)
}

func newBookingFixture(t *testing.T) (*BookingService, *repository.Store, *recordingNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	seedHotel(t, store)
	notifier := &recordingNotifier{}
	svc := NewBookingService(store.Hotels, store.Bookings, NewLocalLocker(), notifier, logger.Discard())
	return svc, store, notifier
}

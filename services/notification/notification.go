package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"luxestay/models"
	"luxestay/services/logger"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventContactReceived      = "contact.received"
	EventHotelRegistered      = "hotel.registered"
)

// Notifier nhận các sự kiện nghiệp vụ. Các hàm không trả lỗi, lỗi gửi chỉ được log lại
type Notifier interface {
	BookingCreated(booking models.Booking)
	BookingStatusChanged(booking models.Booking, previousStatus string)
	ContactReceived(contact models.ContactSubmission)
	HotelRegistered(user models.User)
}

// Event là thông báo đã dựng sẵn, mỗi Channel tự chọn phần mình cần
type Event struct {
	Type    string      `json:"type"`
	Subject string      `json:"subject"`
	Text    string      `json:"text"`
	HTML    string      `json:"-"`
	To      []string    `json:"-"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

// Channel là một kênh gửi thông báo (email, websocket...)
type Channel interface {
	Name() string
	Send(ctx context.Context, event Event) error
}

// EmailResolver tra email của user theo id
type EmailResolver interface {
	EmailOf(ctx context.Context, userID string) (string, error)
}

// Dispatcher dựng Event và fan-out bất đồng bộ ra các Channel
type Dispatcher struct {
	channels   []Channel
	emails     EmailResolver
	adminEmail string
	logger     logger.Logger
	timeout    time.Duration
	wg         sync.WaitGroup
}

func NewDispatcher(log logger.Logger, emails EmailResolver, adminEmail string, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels:   channels,
		emails:     emails,
		adminEmail: adminEmail,
		logger:     log,
		timeout:    30 * time.Second,
	}
}

// Wait chờ các thông báo đang gửi, dùng khi tắt server
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(build func(ctx context.Context) Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		event := build(ctx)
		event.SentAt = time.Now().UTC()
		for _, ch := range d.channels {
			if err := ch.Send(ctx, event); err != nil {
				d.logger.Error("notification %s via %s failed: %v", event.Type, ch.Name(), err)
			}
		}
	}()
}

func (d *Dispatcher) recipients(ctx context.Context, userID string) []string {
	var to []string
	if d.emails != nil && userID != "" {
		email, err := d.emails.EmailOf(ctx, userID)
		if err != nil {
			d.logger.Error("resolve email of user %s: %v", userID, err)
		} else if email != "" {
			to = append(to, email)
		}
	}
	return to
}

func (d *Dispatcher) BookingCreated(booking models.Booking) {
	d.dispatch(func(ctx context.Context) Event {
		msg := NewBookingMessageBuilder(booking).Build()
		return Event{
			Type:    EventBookingCreated,
			Subject: "Booking received - " + booking.HotelName,
			Text:    msg,
			HTML:    "<p>" + msg + "</p>",
			To:      d.recipients(ctx, booking.UserID),
			Payload: booking,
		}
	})
}

func (d *Dispatcher) BookingStatusChanged(booking models.Booking, previousStatus string) {
	d.dispatch(func(ctx context.Context) Event {
		msg := NewBookingMessageBuilder(booking).WithPreviousStatus(previousStatus).Build()
		return Event{
			Type:    EventBookingStatusChanged,
			Subject: fmt.Sprintf("Booking %s - %s", booking.Status, booking.HotelName),
			Text:    msg,
			HTML:    "<p>" + msg + "</p>",
			To:      d.recipients(ctx, booking.UserID),
			Payload: booking,
		}
	})
}

func (d *Dispatcher) ContactReceived(contact models.ContactSubmission) {
	d.dispatch(func(ctx context.Context) Event {
		to := []string{}
		admin := contact.TargetAdminEmail
		if admin == "" {
			admin = d.adminEmail
		}
		if admin != "" {
			to = append(to, admin)
		}
		to = append(to, contact.Email)
		msg := fmt.Sprintf("New contact from %s <%s>: %s\n\n%s", contact.Name, contact.Email, contact.Subject, contact.Message)
		return Event{
			Type:    EventContactReceived,
			Subject: "New contact submission: " + contact.Subject,
			Text:    msg,
			HTML:    "<p>" + strings.ReplaceAll(msg, "\n", "<br>") + "</p>",
			To:      to,
			Payload: contact,
		}
	})
}

func (d *Dispatcher) HotelRegistered(user models.User) {
	d.dispatch(func(ctx context.Context) Event {
		msg := fmt.Sprintf("Welcome to LuxeStay, %s. Your hotel operator account is ready.", user.Name)
		return Event{
			Type:    EventHotelRegistered,
			Subject: "Welcome to LuxeStay",
			Text:    msg,
			HTML:    "<p>" + msg + "</p>",
			To:      []string{user.Email},
			Payload: map[string]string{"id": user.ID, "name": user.Name},
		}
	})
}

// BookingMessageBuilder dựng nội dung thông báo booking
type BookingMessageBuilder struct {
	booking        models.Booking
	previousStatus string
}

func NewBookingMessageBuilder(booking models.Booking) *BookingMessageBuilder {
	return &BookingMessageBuilder{booking: booking}
}

func (b *BookingMessageBuilder) WithPreviousStatus(status string) *BookingMessageBuilder {
	b.previousStatus = status
	return b
}

func (b *BookingMessageBuilder) Build() string {
	stay := fmt.Sprintf("%s to %s", b.booking.CheckIn.Format("2006-01-02"), b.booking.CheckOut.Format("2006-01-02"))
	if b.previousStatus != "" {
		return fmt.Sprintf("🔔 Booking %s at %s (%s) changed from %s to %s.",
			b.booking.ID, b.booking.HotelName, stay, b.previousStatus, b.booking.Status)
	}
	return fmt.Sprintf("🔔 Booking %s at %s (%s) is %s. Total: %.2f",
		b.booking.ID, b.booking.HotelName, stay, b.booking.Status, b.booking.TotalPrice)
}

// Noop bỏ qua mọi sự kiện
type Noop struct{}

func (Noop) BookingCreated(models.Booking)               {}
func (Noop) BookingStatusChanged(models.Booking, string) {}
func (Noop) ContactReceived(models.ContactSubmission)    {}
func (Noop) HotelRegistered(models.User)                 {}

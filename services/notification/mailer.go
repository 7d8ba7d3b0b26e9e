package notification

import (
	"context"
	"fmt"
	"time"

	"luxestay/services/logger"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

type MailerConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer gửi email qua SMTP, bọc bởi circuit breaker để SMTP lỗi không làm treo các lần gửi sau
type Mailer struct {
	from   string
	dialer sender
	cb     *gobreaker.CircuitBreaker
}

// NewMailer trả về nil khi chưa cấu hình SMTP_HOST
func NewMailer(cfg MailerConfig, log logger.Logger) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return newMailer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass), log)
}

func newMailer(from string, dialer sender, log logger.Logger) *Mailer {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("Circuit breaker %s state changed from %s to %s", name, from, to)
		},
	})
	return &Mailer{from: from, dialer: dialer, cb: cb}
}

func (m *Mailer) Name() string { return "email" }

func (m *Mailer) Send(ctx context.Context, event Event) error {
	if len(event.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", event.To...)
	msg.SetHeader("Subject", event.Subject)
	msg.SetBody("text/plain", event.Text)
	if event.HTML != "" {
		msg.AddAlternative("text/html", event.HTML)
	}

	_, err := m.cb.Execute(func() (interface{}, error) {
		return nil, m.dialer.DialAndSend(msg)
	})
	if err != nil {
		return fmt.Errorf("send email %q: %w", event.Subject, err)
	}
	return nil
}

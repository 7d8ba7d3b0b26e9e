package jobs

import (
	"context"
	"time"

	"luxestay/dto"
	"luxestay/services/logger"
	"luxestay/services/notification"

	"github.com/robfig/cron/v3"
)

const (
	EventDailyOverview = "admin.daily_overview"
	dailySchedule      = "0 0 * * *"
)

// OverviewSource cung cấp số liệu tổng quan cho dashboard
type OverviewSource interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
}

// PublishOverview lấy số liệu và đẩy ra channel
func PublishOverview(ctx context.Context, source OverviewSource, ch notification.Channel) error {
	overview, err := source.Overview(ctx)
	if err != nil {
		return err
	}
	return ch.Send(ctx, notification.Event{
		Type:    EventDailyOverview,
		Subject: "Daily overview",
		Payload: overview,
		SentAt:  time.Now().UTC(),
	})
}

// InitCronJobs đăng ký job gửi số liệu tổng quan lúc 0h mỗi ngày
func InitCronJobs(c *cron.Cron, source OverviewSource, ch notification.Channel, log logger.Logger) error {
	_, err := c.AddFunc(dailySchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		log.Info("Đang gửi số liệu tổng quan lúc: %v", time.Now())
		if err := PublishOverview(ctx, source, ch); err != nil {
			log.Error("Lỗi khi gửi số liệu tổng quan: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter đếm request theo cửa sổ cố định trên Redis
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRateLimiter trả về nil nếu không có Redis, khi đó không giới hạn
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if rdb == nil || limit <= 0 {
		return nil
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: "luxestay:rate:"}
}

// Allow tăng bộ đếm của key, trả về false khi vượt limit trong cửa sổ hiện tại
func (l *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, err error) {
	redisKey := l.prefix + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, err
	}

	count := int(incr.Val())
	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}

func (l *RateLimiter) Limit() int {
	return l.limit
}

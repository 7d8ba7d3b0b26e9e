package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoomLocker giữ khóa theo key trong lúc kiểm tra và ghi booking.
// Lock chặn cho tới khi lấy được khóa hoặc ctx hết hạn.
type RoomLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func roomLockKey(roomID string) string {
	return "room:" + roomID
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// LocalLocker khóa trong tiến trình, phù hợp khi chỉ chạy một instance
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

func (l *LocalLocker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (l *LocalLocker) releaseRef(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	kl := l.acquireRef(key)

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.releaseRef(key, kl)
		})
	}, nil
}

// Xóa key chỉ khi token còn khớp, tránh xóa khóa của người khác sau khi TTL hết
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var ErrLockNotAcquired = stderrors.New("lock not acquired")

// RedisLocker khóa dùng chung giữa nhiều instance qua SET NX PX
type RedisLocker struct {
	rdb     *redis.Client
	prefix  string
	ttl     time.Duration
	backoff time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &RedisLocker{
		rdb:     rdb,
		prefix:  "luxestay:lock:",
		ttl:     ttl,
		backoff: 25 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()
	wait := l.backoff

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if ok {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, stderrors.Join(ErrLockNotAcquired, ctx.Err())
		case <-timer.C:
		}
		if wait < 400*time.Millisecond {
			wait *= 2
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// ctx của request có thể đã hết hạn, vẫn phải nhả khóa
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.rdb, []string{redisKey}, token).Err()
		})
	}, nil
}

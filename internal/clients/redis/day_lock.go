package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

// ErrLockHeld is returned when another writer holds the employee/day lock.
var ErrLockHeld = errors.New("employee day lock held by another writer")

// DayLocker serializes shift writers for one employee on one calendar day
// across service instances.
type DayLocker interface {
	Acquire(ctx context.Context, employeeID uuid.UUID, day time.Time) (release func(), err error)
}

type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL bounds how long a crashed holder can block others.
	TTL time.Duration
	// Wait is how long Acquire keeps retrying before giving up.
	Wait time.Duration
}

type redisDayLocker struct {
	log  *logger.Logger
	rdb  *goredis.Client
	ttl  time.Duration
	wait time.Duration
}

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewDayLocker connects to Redis. An empty address yields a no-op locker.
func NewDayLocker(log *logger.Logger, opts Options) (DayLocker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		log.Info("REDIS_ADDR not set; employee day locks disabled")
		return NoopDayLocker{}, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisDayLocker(log, rdb, opts), nil
}

func newRedisDayLocker(log *logger.Logger, rdb *goredis.Client, opts Options) *redisDayLocker {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	wait := opts.Wait
	if wait < 0 {
		wait = 0
	}
	return &redisDayLocker{
		log:  log.With("service", "RedisDayLocker"),
		rdb:  rdb,
		ttl:  ttl,
		wait: wait,
	}
}

// DayLockKey is the Redis key guarding employeeID's shifts on day.
func DayLockKey(employeeID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("shiftplan:lock:shift:%s:%s", employeeID, day.Format(time.DateOnly))
}

func (l *redisDayLocker) Acquire(ctx context.Context, employeeID uuid.UUID, day time.Time) (func(), error) {
	key := DayLockKey(employeeID, day)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	backoff := 25 * time.Millisecond

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockHeld
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 200*time.Millisecond {
			backoff *= 2
		}
	}

	release := func() {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
			l.log.Warn("Failed to release day lock", "key", key, "error", err)
		}
	}
	return release, nil
}

func (l *redisDayLocker) Close() error {
	return l.rdb.Close()
}

// NoopDayLocker relies on database row locks alone.
type NoopDayLocker struct{}

func (NoopDayLocker) Acquire(context.Context, uuid.UUID, time.Time) (func(), error) {
	return func() {}, nil
}

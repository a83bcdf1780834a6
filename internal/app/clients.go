package app

import (
	"fmt"

	"github.com/yungbote/shiftplan-backend/internal/clients/redis"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type Clients struct {
	DayLocker redis.DayLocker
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	locker, err := redis.NewDayLocker(log, redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.DayLockTTL,
		Wait:     cfg.DayLockWait,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init redis day locker: %w", err)
	}
	return Clients{DayLocker: locker}, nil
}

func (c Clients) Close() {
	if closer, ok := c.DayLocker.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

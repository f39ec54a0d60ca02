package app

import (
	"fmt"

	"github.com/yungbote/neurobridge-profiling/internal/clients/redis"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type Clients struct {
	EventBus redis.EventBus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var bus redis.EventBus
	if cfg.EventsEnabled && cfg.RedisAddr != "" {
		b, err := redis.NewEventBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		bus = b
	}
	return Clients{EventBus: bus}, nil
}

func (c Clients) Close() {
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
}

package app

import (
	"github.com/yungbote/shiftplan-backend/internal/http"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	rc := http.RouterConfig{
		Log:               log,
		AuthMiddleware:    middleware.Auth,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		AccountHandler:    handlers.Account,
		OwnerHandler:      handlers.Owner,
		RosterHandler:     handlers.Roster,
		SchedulingHandler: handlers.Scheduling,
	}
	if cfg.Otel.Enabled {
		rc.OtelServiceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, rc)
}

package app

import (
	"database/sql"

	httpH "github.com/yungbote/shiftplan-backend/internal/http/handlers"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Account    *httpH.AccountHandler
	Owner      *httpH.OwnerHandler
	Roster     *httpH.RosterHandler
	Scheduling *httpH.SchedulingHandler
}

func wireHandlers(log *logger.Logger, sqlDB *sql.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	return Handlers{
		Health:     httpH.NewHealthHandler(pinger),
		Account:    httpH.NewAccountHandler(services.Account),
		Owner:      httpH.NewOwnerHandler(services.Roster),
		Roster:     httpH.NewRosterHandler(services.Roster),
		Scheduling: httpH.NewSchedulingHandler(services.Scheduling),
	}
}

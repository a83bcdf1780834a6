package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
	"github.com/yungbote/shiftplan-backend/internal/services"
)

type Aggregates struct {
	Owner    domainagg.OwnerAggregate
	Roster   domainagg.RosterAggregate
	Schedule domainagg.ScheduleAggregate
	Shift    domainagg.ShiftAggregate
}

type Services struct {
	Account    services.AccountService
	Roster     services.RosterService
	Scheduling services.SchedulingService
}

func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, cfg Config, r Repos, c Clients) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:         db,
		Log:        log,
		Hooks:      aggregates.NewObservabilityHooks(metrics),
		TxAttempts: cfg.TxAttempts,
	}
	aggs := Aggregates{
		Owner: aggregates.NewOwnerAggregate(aggregates.OwnerAggregateDeps{
			Base:      base,
			Accounts:  r.Account,
			Owners:    r.Owner,
			Employees: r.Employee,
			Contracts: r.Contract,
			Tasks:     r.Task,
			Schedules: r.Schedule,
			Shifts:    r.Shift,
		}),
		Roster: aggregates.NewRosterAggregate(aggregates.RosterAggregateDeps{
			Base:      base,
			Accounts:  r.Account,
			Owners:    r.Owner,
			Contracts: r.Contract,
			Tasks:     r.Task,
			Employees: r.Employee,
			Shifts:    r.Shift,
		}),
		Schedule: aggregates.NewScheduleAggregate(aggregates.ScheduleAggregateDeps{
			Base:      base,
			Owners:    r.Owner,
			Schedules: r.Schedule,
			Shifts:    r.Shift,
		}),
		Shift: aggregates.NewShiftAggregate(aggregates.ShiftAggregateDeps{
			Base:      base,
			Schedules: r.Schedule,
			Shifts:    r.Shift,
			Employees: r.Employee,
			Tasks:     r.Task,
			Locker:    c.DayLocker,
		}),
	}
	for _, a := range []domainagg.Aggregate{aggs.Owner, aggs.Roster, aggs.Schedule, aggs.Shift} {
		b := a.Boundary()
		log.Debug("Aggregate ready", "aggregate", b.Name, "writes", b.Writes, "locks", b.Locks)
	}
	return aggs
}

func wireServices(log *logger.Logger, cfg Config, r Repos, aggs Aggregates) Services {
	log.Info("Wiring services...")
	return Services{
		Account:    services.NewAccountService(log, r.Account, r.Owner, r.Employee, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Roster:     services.NewRosterService(log, aggs.Owner, aggs.Roster, r.Owner, r.Contract, r.Task, r.Employee),
		Scheduling: services.NewSchedulingService(log, aggs.Schedule, aggs.Shift, r.Schedule, r.Shift, r.Employee),
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	repotest "github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
)

type serviceFixture struct {
	ctx context.Context
	tx  *gorm.DB

	accounts   AccountService
	roster     RosterService
	scheduling SchedulingService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	accountRepo := repos.NewAccountRepo(tx, log)
	ownerRepo := repos.NewOwnerRepo(tx, log)
	contractRepo := repos.NewContractRepo(tx, log)
	taskRepo := repos.NewTaskRepo(tx, log)
	employeeRepo := repos.NewEmployeeRepo(tx, log)
	scheduleRepo := repos.NewScheduleRepo(tx, log)
	shiftRepo := repos.NewShiftRepo(tx, log)

	base := aggregates.BaseDeps{DB: tx, Log: log, Runner: aggregates.NewGormTxRunner(tx)}

	acctSvc := NewAccountService(log, accountRepo, ownerRepo, employeeRepo, "test-secret", time.Hour)
	acctSvc.(*accountService).bcryptCost = bcrypt.MinCost

	return &serviceFixture{
		ctx:      context.Background(),
		tx:       tx,
		accounts: acctSvc,
		roster: NewRosterService(log,
			aggregates.NewOwnerAggregate(aggregates.OwnerAggregateDeps{
				Base:      base,
				Accounts:  accountRepo,
				Owners:    ownerRepo,
				Employees: employeeRepo,
				Contracts: contractRepo,
				Tasks:     taskRepo,
				Schedules: scheduleRepo,
				Shifts:    shiftRepo,
			}),
			aggregates.NewRosterAggregate(aggregates.RosterAggregateDeps{
				Base:      base,
				Accounts:  accountRepo,
				Owners:    ownerRepo,
				Contracts: contractRepo,
				Tasks:     taskRepo,
				Employees: employeeRepo,
				Shifts:    shiftRepo,
			}),
			ownerRepo, contractRepo, taskRepo, employeeRepo,
		),
		scheduling: NewSchedulingService(log,
			aggregates.NewScheduleAggregate(aggregates.ScheduleAggregateDeps{
				Base:      base,
				Owners:    ownerRepo,
				Schedules: scheduleRepo,
				Shifts:    shiftRepo,
			}),
			aggregates.NewShiftAggregate(aggregates.ShiftAggregateDeps{
				Base:      base,
				Schedules: scheduleRepo,
				Shifts:    shiftRepo,
				Employees: employeeRepo,
				Tasks:     taskRepo,
			}),
			scheduleRepo, shiftRepo, employeeRepo,
		),
	}
}

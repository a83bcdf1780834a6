package aggregates

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	repotest "github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
)

type aggFixture struct {
	ctx   context.Context
	tx    *gorm.DB
	hooks *spyHooks
	base  BaseDeps

	accounts  repos.AccountRepo
	owners    repos.OwnerRepo
	contracts repos.ContractRepo
	tasks     repos.TaskRepo
	employees repos.EmployeeRepo
	schedules repos.ScheduleRepo
	shifts    repos.ShiftRepo
}

func newAggFixture(t *testing.T) *aggFixture {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)
	hooks := &spyHooks{}

	return &aggFixture{
		ctx:   context.Background(),
		tx:    tx,
		hooks: hooks,
		base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
			Hooks:  hooks,
		},
		accounts:  repos.NewAccountRepo(tx, log),
		owners:    repos.NewOwnerRepo(tx, log),
		contracts: repos.NewContractRepo(tx, log),
		tasks:     repos.NewTaskRepo(tx, log),
		employees: repos.NewEmployeeRepo(tx, log),
		schedules: repos.NewScheduleRepo(tx, log),
		shifts:    repos.NewShiftRepo(tx, log),
	}
}

func (f *aggFixture) shiftAggregate(locker DayLocker) *shiftAggregate {
	return NewShiftAggregate(ShiftAggregateDeps{
		Base:      f.base,
		Schedules: f.schedules,
		Shifts:    f.shifts,
		Employees: f.employees,
		Tasks:     f.tasks,
		Locker:    locker,
	}).(*shiftAggregate)
}

func (f *aggFixture) scheduleAggregate() *scheduleAggregate {
	return NewScheduleAggregate(ScheduleAggregateDeps{
		Base:      f.base,
		Owners:    f.owners,
		Schedules: f.schedules,
		Shifts:    f.shifts,
	}).(*scheduleAggregate)
}

func (f *aggFixture) ownerAggregate() *ownerAggregate {
	return NewOwnerAggregate(OwnerAggregateDeps{
		Base:      f.base,
		Accounts:  f.accounts,
		Owners:    f.owners,
		Employees: f.employees,
		Contracts: f.contracts,
		Tasks:     f.tasks,
		Schedules: f.schedules,
		Shifts:    f.shifts,
	}).(*ownerAggregate)
}

func (f *aggFixture) rosterAggregate() *rosterAggregate {
	return NewRosterAggregate(RosterAggregateDeps{
		Base:      f.base,
		Accounts:  f.accounts,
		Owners:    f.owners,
		Contracts: f.contracts,
		Tasks:     f.tasks,
		Employees: f.employees,
		Shifts:    f.shifts,
	}).(*rosterAggregate)
}

func (f *aggFixture) countRows(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := f.tx.WithContext(f.ctx).Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

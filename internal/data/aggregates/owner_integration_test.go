package aggregates

import (
	"testing"

	"github.com/google/uuid"

	repotest "github.com/yungbote/shiftplan-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

func TestOwnerAggregateCreateRoleExclusivity(t *testing.T) {
	f := newAggFixture(t)
	agg := f.ownerAggregate()

	plain := repotest.SeedAccount(t, f.ctx, f.tx, "plain@example.com")
	res, err := agg.CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: plain.ID})
	if err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}
	if res.OwnerID == uuid.Nil || res.AccountID != plain.ID {
		t.Fatalf("CreateOwner: unexpected result %+v", res)
	}

	_, err = agg.CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: plain.ID})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("second owner for account: want conflict got %q", domainagg.CodeOf(err))
	}

	super := repotest.SeedSuperuser(t, f.ctx, f.tx, "root@example.com")
	_, err = agg.CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: super.ID})
	if !domainagg.IsCode(err, domainagg.CodeRoleConflict) {
		t.Fatalf("superuser: want role_conflict got %q", domainagg.CodeOf(err))
	}
	if n := f.countRows(t, &types.Owner{}, "account_id = ?", super.ID); n != 0 {
		t.Fatalf("superuser owner persisted")
	}

	emp := repotest.SeedEmployee(t, f.ctx, f.tx, res.OwnerID, nil)
	_, err = agg.CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: emp.AccountID})
	if !domainagg.IsCode(err, domainagg.CodeRoleConflict) {
		t.Fatalf("employee: want role_conflict got %q", domainagg.CodeOf(err))
	}

	_, err = agg.CreateOwner(f.ctx, domainagg.CreateOwnerInput{AccountID: uuid.New()})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown account: want not_found got %q", domainagg.CodeOf(err))
	}
}

func TestOwnerAggregateDeleteCascade(t *testing.T) {
	f := newAggFixture(t)
	owner := repotest.SeedOwner(t, f.ctx, f.tx)
	other := repotest.SeedOwner(t, f.ctx, f.tx)
	contract := repotest.SeedContract(t, f.ctx, f.tx, owner.ID, 38)
	repotest.SeedTask(t, f.ctx, f.tx, owner.ID, "cashier")
	emp := repotest.SeedEmployee(t, f.ctx, f.tx, owner.ID, &contract.ID)
	sched := repotest.SeedSchedule(t, f.ctx, f.tx, owner.ID, "2024-03-04", "07:00", "20:00")
	repotest.SeedShift(t, f.ctx, f.tx, sched, emp.ID, "09:00", "13:00")
	otherSched := repotest.SeedSchedule(t, f.ctx, f.tx, other.ID, "2024-03-04", "07:00", "20:00")
	agg := f.ownerAggregate()

	res, err := agg.DeleteOwner(f.ctx, domainagg.DeleteOwnerInput{OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("DeleteOwner: %v", err)
	}
	want := domainagg.DeleteOwnerResult{
		OwnerID:           owner.ID,
		ContractsRemoved:  1,
		TasksRemoved:      1,
		SchedulesRemoved:  1,
		ShiftsRemoved:     1,
		EmployeesDetached: 1,
	}
	if res != want {
		t.Fatalf("DeleteOwner: want=%+v got=%+v", want, res)
	}

	got, err := f.employees.GetByID(dbctx.Context{Ctx: f.ctx}, emp.ID)
	if err != nil || got == nil {
		t.Fatalf("employee must survive: row=%v err=%v", got, err)
	}
	if got.OwnerID != nil || got.ContractID != nil {
		t.Fatalf("employee links not cleared: owner=%v contract=%v", got.OwnerID, got.ContractID)
	}
	if n := f.countRows(t, &types.Schedule{}, "id = ?", otherSched.ID); n != 1 {
		t.Fatalf("other owner's schedule removed")
	}
	if n := f.countRows(t, &types.Owner{}, "id = ?", owner.ID); n != 0 {
		t.Fatalf("owner still present")
	}

	_, err = agg.DeleteOwner(f.ctx, domainagg.DeleteOwnerInput{OwnerID: owner.ID})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("DeleteOwner twice: want not_found got %q", domainagg.CodeOf(err))
	}
}

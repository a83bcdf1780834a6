package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

type OwnerAggregateDeps struct {
	Base BaseDeps

	Accounts  repos.AccountRepo
	Owners    repos.OwnerRepo
	Employees repos.EmployeeRepo
	Contracts repos.ContractRepo
	Tasks     repos.TaskRepo
	Schedules repos.ScheduleRepo
	Shifts    repos.ShiftRepo
}

type ownerAggregate struct {
	deps OwnerAggregateDeps
}

func NewOwnerAggregate(deps OwnerAggregateDeps) domainagg.OwnerAggregate {
	deps.Base = deps.Base.withDefaults()
	return &ownerAggregate{deps: deps}
}

func (a *ownerAggregate) Boundary() domainagg.Boundary {
	return domainagg.OwnerAggregateBoundary
}

func (a *ownerAggregate) configured() bool {
	return a.deps.Accounts != nil &&
		a.deps.Owners != nil &&
		a.deps.Employees != nil &&
		a.deps.Contracts != nil &&
		a.deps.Tasks != nil &&
		a.deps.Schedules != nil &&
		a.deps.Shifts != nil
}

func (a *ownerAggregate) CreateOwner(ctx context.Context, in domainagg.CreateOwnerInput) (domainagg.CreateOwnerResult, error) {
	const op = "Roster.Owner.Create"
	var out domainagg.CreateOwnerResult
	if in.AccountID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account_id", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "owner aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		acct, err := a.deps.Accounts.LockByID(dbc, in.AccountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return NotFoundError(op, "account")
		}
		if acct.IsSuperuser {
			return domainagg.NewError(domainagg.CodeRoleConflict, op, "a superuser cannot be an owner", nil)
		}
		emp, err := a.deps.Employees.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return err
		}
		if emp != nil {
			return domainagg.NewError(domainagg.CodeRoleConflict, op, "an employee cannot be an owner", nil)
		}
		existing, err := a.deps.Owners.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ConflictError(fmt.Sprintf("account %s is already an owner", acct.ID))
		}

		row := &types.Owner{AccountID: acct.ID}
		if _, err := a.deps.Owners.Create(dbc, []*types.Owner{row}); err != nil {
			return err
		}
		out = domainagg.CreateOwnerResult{OwnerID: row.ID, AccountID: row.AccountID}
		return nil
	})
	if err != nil {
		return domainagg.CreateOwnerResult{}, err
	}
	return out, nil
}

// DeleteOwner removes the owner with its contracts, tasks, schedules and
// shifts. Employees survive with owner_id and contract_id cleared.
func (a *ownerAggregate) DeleteOwner(ctx context.Context, in domainagg.DeleteOwnerInput) (domainagg.DeleteOwnerResult, error) {
	const op = "Roster.Owner.Delete"
	var out domainagg.DeleteOwnerResult
	if in.OwnerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner_id", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "owner aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.deps.Owners.LockByID(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return NotFoundError(op, "owner")
		}
		out.OwnerID = owner.ID

		scheduleIDs, err := a.deps.Schedules.IDsByOwner(dbc, owner.ID)
		if err != nil {
			return err
		}
		if out.ShiftsRemoved, err = a.deps.Shifts.DeleteBySchedules(dbc, scheduleIDs); err != nil {
			return err
		}
		if out.SchedulesRemoved, err = a.deps.Schedules.DeleteByOwner(dbc, owner.ID); err != nil {
			return err
		}

		taskIDs, err := a.deps.Tasks.IDsByOwner(dbc, owner.ID)
		if err != nil {
			return err
		}
		if _, err := a.deps.Shifts.ClearTasks(dbc, taskIDs); err != nil {
			return err
		}
		if out.TasksRemoved, err = a.deps.Tasks.DeleteByOwner(dbc, owner.ID); err != nil {
			return err
		}

		contractIDs, err := a.deps.Contracts.IDsByOwner(dbc, owner.ID)
		if err != nil {
			return err
		}
		if _, err := a.deps.Employees.DetachContracts(dbc, contractIDs); err != nil {
			return err
		}
		if out.ContractsRemoved, err = a.deps.Contracts.DeleteByOwner(dbc, owner.ID); err != nil {
			return err
		}

		if out.EmployeesDetached, err = a.deps.Employees.DetachOwner(dbc, owner.ID); err != nil {
			return err
		}

		n, err := a.deps.Owners.DeleteByID(dbc, owner.ID)
		if err != nil {
			return err
		}
		return RequireRowsAffected(n, fmt.Sprintf("owner %s removed concurrently", owner.ID))
	})
	if err != nil {
		return domainagg.DeleteOwnerResult{}, err
	}
	return out, nil
}

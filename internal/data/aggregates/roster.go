package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/domain/roster"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

type RosterAggregateDeps struct {
	Base BaseDeps

	Accounts  repos.AccountRepo
	Owners    repos.OwnerRepo
	Contracts repos.ContractRepo
	Tasks     repos.TaskRepo
	Employees repos.EmployeeRepo
	Shifts    repos.ShiftRepo
}

type rosterAggregate struct {
	deps RosterAggregateDeps
}

func NewRosterAggregate(deps RosterAggregateDeps) domainagg.RosterAggregate {
	deps.Base = deps.Base.withDefaults()
	return &rosterAggregate{deps: deps}
}

func (a *rosterAggregate) Boundary() domainagg.Boundary {
	return domainagg.RosterAggregateBoundary
}

func (a *rosterAggregate) configured() bool {
	return a.deps.Accounts != nil &&
		a.deps.Owners != nil &&
		a.deps.Contracts != nil &&
		a.deps.Tasks != nil &&
		a.deps.Employees != nil &&
		a.deps.Shifts != nil
}

func (a *rosterAggregate) notConfigured(op string) error {
	return domainagg.NewError(domainagg.CodeInternal, op, "roster aggregate repos not configured", nil)
}

// ---------------- contracts ----------------

func (a *rosterAggregate) CreateContract(ctx context.Context, in domainagg.CreateContractInput) (domainagg.ContractResult, error) {
	const op = "Roster.Contract.Create"
	var out domainagg.ContractResult
	if in.OwnerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner_id", nil)
	}
	if !roster.ValidWeekHours(in.WeekHours) {
		return out, domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("week_hours must be between %d and %d", roster.MinWeekHours, roster.MaxWeekHours), nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.deps.Owners.GetByID(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return NotFoundError(op, "owner")
		}
		dup, err := a.deps.Contracts.GetByOwnerHours(dbc, owner.ID, in.WeekHours)
		if err != nil {
			return err
		}
		if dup != nil {
			return ConflictError(fmt.Sprintf("contract with %d week hours already exists", in.WeekHours))
		}
		row := &types.Contract{OwnerID: owner.ID, WeekHours: in.WeekHours}
		if _, err := a.deps.Contracts.Create(dbc, []*types.Contract{row}); err != nil {
			return err
		}
		out = domainagg.ContractResult{ContractID: row.ID, OwnerID: row.OwnerID, WeekHours: row.WeekHours}
		return nil
	})
	if err != nil {
		return domainagg.ContractResult{}, err
	}
	return out, nil
}

func (a *rosterAggregate) DeleteContract(ctx context.Context, in domainagg.DeleteRosterItemInput) (domainagg.DeleteContractResult, error) {
	const op = "Roster.Contract.Delete"
	var out domainagg.DeleteContractResult
	if in.ID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing contract_id", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Contracts.GetByID(dbc, in.ID)
		if err != nil {
			return err
		}
		if row == nil || !OwnedBy(row.OwnerID, in.OwnerID) {
			return NotFoundError(op, "contract")
		}
		detached, err := a.deps.Employees.DetachContracts(dbc, []uuid.UUID{row.ID})
		if err != nil {
			return err
		}
		n, err := a.deps.Contracts.DeleteByID(dbc, row.ID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, fmt.Sprintf("contract %s removed concurrently", row.ID)); err != nil {
			return err
		}
		out = domainagg.DeleteContractResult{ContractID: row.ID, EmployeesDetached: detached}
		return nil
	})
	if err != nil {
		return domainagg.DeleteContractResult{}, err
	}
	return out, nil
}

// ---------------- tasks ----------------

func (a *rosterAggregate) CreateTask(ctx context.Context, in domainagg.CreateTaskInput) (domainagg.TaskResult, error) {
	const op = "Roster.Task.Create"
	var out domainagg.TaskResult
	name := strings.TrimSpace(in.Name)
	if in.OwnerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner_id", nil)
	}
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "task name is required", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.deps.Owners.GetByID(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return NotFoundError(op, "owner")
		}
		dup, err := a.deps.Tasks.GetByOwnerName(dbc, owner.ID, name)
		if err != nil {
			return err
		}
		if dup != nil {
			return ConflictError(fmt.Sprintf("task %q already exists", name))
		}
		row := &types.Task{OwnerID: owner.ID, Name: name}
		if _, err := a.deps.Tasks.Create(dbc, []*types.Task{row}); err != nil {
			return err
		}
		out = domainagg.TaskResult{TaskID: row.ID, OwnerID: row.OwnerID, Name: row.Name}
		return nil
	})
	if err != nil {
		return domainagg.TaskResult{}, err
	}
	return out, nil
}

func (a *rosterAggregate) DeleteTask(ctx context.Context, in domainagg.DeleteRosterItemInput) error {
	const op = "Roster.Task.Delete"
	if in.ID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing task_id", nil)
	}
	if !a.configured() {
		return a.notConfigured(op)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Tasks.GetByID(dbc, in.ID)
		if err != nil {
			return err
		}
		if row == nil || !OwnedBy(row.OwnerID, in.OwnerID) {
			return NotFoundError(op, "task")
		}
		if _, err := a.deps.Shifts.ClearTasks(dbc, []uuid.UUID{row.ID}); err != nil {
			return err
		}
		n, err := a.deps.Tasks.DeleteByID(dbc, row.ID)
		if err != nil {
			return err
		}
		return RequireRowsAffected(n, fmt.Sprintf("task %s removed concurrently", row.ID))
	})
}

// ---------------- employees ----------------

func (a *rosterAggregate) CreateEmployee(ctx context.Context, in domainagg.CreateEmployeeInput) (domainagg.EmployeeResult, error) {
	const op = "Roster.Employee.Create"
	var out domainagg.EmployeeResult
	if in.AccountID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account_id", nil)
	}
	if in.StartDate.IsZero() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "start_date is required", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	startDate := scheduling.NormalizeDate(in.StartDate)
	var endDate *datatypes.Date
	if in.EndDate != nil && !in.EndDate.IsZero() {
		d := scheduling.NormalizeDate(*in.EndDate)
		if time.Time(d).Before(time.Time(startDate)) {
			return out, domainagg.NewError(domainagg.CodeInvalidTimeRange, op, "end_date is before start_date", nil)
		}
		endDate = &d
	}
	ownerID := normalizeOptionalID(in.OwnerID)
	contractID := normalizeOptionalID(in.ContractID)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		acct, err := a.deps.Accounts.LockByID(dbc, in.AccountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return NotFoundError(op, "account")
		}
		existing, err := a.deps.Employees.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ConflictError(fmt.Sprintf("account %s is already an employee", acct.ID))
		}
		asOwner, err := a.deps.Owners.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return err
		}
		if asOwner != nil {
			return domainagg.NewError(domainagg.CodeRoleConflict, op, "an owner cannot be an employee", nil)
		}

		if ownerID != nil {
			owner, err := a.deps.Owners.GetByID(dbc, *ownerID)
			if err != nil {
				return err
			}
			if owner == nil {
				return NotFoundError(op, "owner")
			}
		}
		if contractID != nil {
			contract, err := a.deps.Contracts.GetByID(dbc, *contractID)
			if err != nil {
				return err
			}
			if contract == nil {
				return NotFoundError(op, "contract")
			}
			if ownerID == nil || contract.OwnerID != *ownerID {
				return domainagg.NewError(domainagg.CodeOwnerMismatch, op, "contract belongs to a different owner", nil)
			}
		}

		row := &types.Employee{
			AccountID:  acct.ID,
			OwnerID:    ownerID,
			ContractID: contractID,
			StartDate:  startDate,
			EndDate:    endDate,
		}
		if _, err := a.deps.Employees.Create(dbc, []*types.Employee{row}); err != nil {
			return err
		}
		out = domainagg.EmployeeResult{
			EmployeeID: row.ID,
			AccountID:  row.AccountID,
			OwnerID:    row.OwnerID,
			ContractID: row.ContractID,
		}
		return nil
	})
	if err != nil {
		return domainagg.EmployeeResult{}, err
	}
	return out, nil
}

func (a *rosterAggregate) DeleteEmployee(ctx context.Context, in domainagg.DeleteRosterItemInput) (domainagg.DeleteEmployeeResult, error) {
	const op = "Roster.Employee.Delete"
	var out domainagg.DeleteEmployeeResult
	if in.ID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing employee_id", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Employees.LockByID(dbc, in.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return NotFoundError(op, "employee")
		}
		if in.OwnerID != uuid.Nil && !row.BelongsTo(in.OwnerID) {
			return NotFoundError(op, "employee")
		}
		removed, err := a.deps.Shifts.DeleteByEmployee(dbc, row.ID)
		if err != nil {
			return err
		}
		n, err := a.deps.Employees.DeleteByID(dbc, row.ID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, fmt.Sprintf("employee %s removed concurrently", row.ID)); err != nil {
			return err
		}
		out = domainagg.DeleteEmployeeResult{EmployeeID: row.ID, ShiftsRemoved: removed}
		return nil
	})
	if err != nil {
		return domainagg.DeleteEmployeeResult{}, err
	}
	return out, nil
}

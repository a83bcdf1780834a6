package aggregates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

// DayLocker serializes shift writers for one employee/day across processes.
type DayLocker interface {
	Acquire(ctx context.Context, employeeID uuid.UUID, day time.Time) (release func(), err error)
}

type ShiftAggregateDeps struct {
	Base BaseDeps

	Schedules repos.ScheduleRepo
	Shifts    repos.ShiftRepo
	Employees repos.EmployeeRepo
	Tasks     repos.TaskRepo

	// Locker is optional; row locks on the employee still apply without it.
	Locker DayLocker
}

type shiftAggregate struct {
	deps ShiftAggregateDeps
}

func NewShiftAggregate(deps ShiftAggregateDeps) domainagg.ShiftAggregate {
	deps.Base = deps.Base.withDefaults()
	return &shiftAggregate{deps: deps}
}

func (a *shiftAggregate) Boundary() domainagg.Boundary {
	return domainagg.ShiftAggregateBoundary
}

func (a *shiftAggregate) CreateShift(ctx context.Context, in domainagg.PlaceShiftInput) (domainagg.PlaceShiftResult, error) {
	return a.place(ctx, "Scheduling.Shift.Create", in, false)
}

func (a *shiftAggregate) UpdateShift(ctx context.Context, in domainagg.PlaceShiftInput) (domainagg.PlaceShiftResult, error) {
	return a.place(ctx, "Scheduling.Shift.Update", in, true)
}

func (a *shiftAggregate) place(ctx context.Context, op string, in domainagg.PlaceShiftInput, update bool) (domainagg.PlaceShiftResult, error) {
	var out domainagg.PlaceShiftResult
	if update && in.ShiftID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing shift_id", nil)
	}
	if err := RequireIDs(op, []string{"schedule_id", "employee_id"}, in.ScheduleID, in.EmployeeID); err != nil {
		return out, err
	}
	if in.ShiftDate.IsZero() || in.StartTime.IsZero() || in.EndTime.IsZero() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "shift_date, start_time and end_time are required", nil)
	}
	if a.deps.Schedules == nil || a.deps.Shifts == nil || a.deps.Employees == nil || a.deps.Tasks == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "shift aggregate repos not configured", nil)
	}

	day := scheduling.NormalizeDate(in.ShiftDate)
	start := scheduling.NormalizeInstant(in.StartTime)
	end := scheduling.NormalizeInstant(in.EndTime)

	if a.deps.Locker != nil {
		release, err := a.deps.Locker.Acquire(ctx, in.EmployeeID, time.Time(day))
		if err != nil {
			return out, failWrite(ctx, a.deps.Base, op, errors.Join(ErrRetryable, err))
		}
		defer release()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		var existing *types.Shift
		if update {
			row, err := a.deps.Shifts.GetByID(dbc, in.ShiftID)
			if err != nil {
				return err
			}
			if row == nil {
				return NotFoundError(op, "shift")
			}
			if err := a.requireScheduleVisible(dbc, op, row.ScheduleID, in.OwnerID); err != nil {
				return err
			}
			existing = row
		}

		employee, err := a.deps.Employees.LockByID(dbc, in.EmployeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return NotFoundError(op, "employee")
		}

		sched, err := a.deps.Schedules.GetByID(dbc, in.ScheduleID)
		if err != nil {
			return err
		}
		if sched == nil || !OwnedBy(sched.OwnerID, in.OwnerID) {
			return NotFoundError(op, "schedule")
		}

		var taskOwner *uuid.UUID
		if in.TaskID != nil && *in.TaskID != uuid.Nil {
			task, err := a.deps.Tasks.GetByID(dbc, *in.TaskID)
			if err != nil {
				return err
			}
			if task == nil {
				return NotFoundError(op, "task")
			}
			taskOwner = &task.OwnerID
		}

		if err := scheduling.ValidateShiftTimeRange(op, start, end); err != nil {
			return err
		}

		selfID := uuid.Nil
		if existing != nil {
			selfID = existing.ID
		}
		siblingRows, err := a.deps.Shifts.FindOverlapping(dbc, employee.ID, day, start, end, selfID)
		if err != nil {
			return err
		}
		siblings := make([]types.Shift, 0, len(siblingRows))
		for _, s := range siblingRows {
			siblings = append(siblings, *s)
		}

		placement := scheduling.Placement{
			ShiftID:         selfID,
			Schedule:        *sched,
			EmployeeOwnerID: employee.OwnerID,
			TaskOwnerID:     taskOwner,
			ShiftDate:       day,
			StartTime:       start,
			EndTime:         end,
		}
		if err := scheduling.ValidateShiftPlacement(op, placement, siblings); err != nil {
			return err
		}

		row := &types.Shift{
			ID:         in.ShiftID,
			ScheduleID: sched.ID,
			EmployeeID: employee.ID,
			TaskID:     normalizeOptionalID(in.TaskID),
			ShiftDate:  day,
			StartTime:  start,
			EndTime:    end,
		}
		if existing != nil {
			if err := a.deps.Shifts.Update(dbc, row); err != nil {
				return err
			}
		} else {
			if _, err := a.deps.Shifts.Create(dbc, []*types.Shift{row}); err != nil {
				return err
			}
		}

		out = shiftResult(row, existing == nil)
		return nil
	})
	if err != nil {
		return domainagg.PlaceShiftResult{}, err
	}
	return out, nil
}

func (a *shiftAggregate) DeleteShift(ctx context.Context, in domainagg.DeleteShiftInput) error {
	const op = "Scheduling.Shift.Delete"
	if in.ShiftID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing shift_id", nil)
	}
	if a.deps.Schedules == nil || a.deps.Shifts == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "shift aggregate repos not configured", nil)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Shifts.GetByID(dbc, in.ShiftID)
		if err != nil {
			return err
		}
		if row == nil {
			return NotFoundError(op, "shift")
		}
		if err := a.requireScheduleVisible(dbc, op, row.ScheduleID, in.OwnerID); err != nil {
			return err
		}
		n, err := a.deps.Shifts.DeleteByID(dbc, row.ID)
		if err != nil {
			return err
		}
		return RequireRowsAffected(n, fmt.Sprintf("shift %s removed concurrently", row.ID))
	})
}

func (a *shiftAggregate) requireScheduleVisible(dbc dbctx.Context, op string, scheduleID, ownerID uuid.UUID) error {
	sched, err := a.deps.Schedules.GetByID(dbc, scheduleID)
	if err != nil {
		return err
	}
	if sched == nil || !OwnedBy(sched.OwnerID, ownerID) {
		return NotFoundError(op, "shift")
	}
	return nil
}

func normalizeOptionalID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

func shiftResult(row *types.Shift, created bool) domainagg.PlaceShiftResult {
	return domainagg.PlaceShiftResult{
		ShiftID:    row.ID,
		ScheduleID: row.ScheduleID,
		EmployeeID: row.EmployeeID,
		TaskID:     row.TaskID,
		ShiftDate:  time.Time(row.ShiftDate),
		StartTime:  row.StartTime,
		EndTime:    row.EndTime,
		Created:    created,
	}
}

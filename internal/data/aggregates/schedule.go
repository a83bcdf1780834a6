package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

type ScheduleAggregateDeps struct {
	Base BaseDeps

	Owners    repos.OwnerRepo
	Schedules repos.ScheduleRepo
	Shifts    repos.ShiftRepo
}

type scheduleAggregate struct {
	deps ScheduleAggregateDeps
}

func NewScheduleAggregate(deps ScheduleAggregateDeps) domainagg.ScheduleAggregate {
	deps.Base = deps.Base.withDefaults()
	return &scheduleAggregate{deps: deps}
}

func (a *scheduleAggregate) Boundary() domainagg.Boundary {
	return domainagg.ScheduleAggregateBoundary
}

func (a *scheduleAggregate) CreateSchedule(ctx context.Context, in domainagg.ScheduleInput) (domainagg.ScheduleResult, error) {
	const op = "Scheduling.Schedule.Create"
	var out domainagg.ScheduleResult
	if in.OwnerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner_id", nil)
	}
	if err := a.validateInput(op, in); err != nil {
		return out, err
	}

	date := scheduling.NormalizeDate(in.Date)
	start := scheduling.NormalizeInstant(in.Start)
	end := scheduling.NormalizeInstant(in.End)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := scheduling.ValidateScheduleWindow(op, date, start, end); err != nil {
			return err
		}
		owner, err := a.deps.Owners.LockByID(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return NotFoundError(op, "owner")
		}
		dup, err := a.deps.Schedules.GetByOwnerDate(dbc, owner.ID, date)
		if err != nil {
			return err
		}
		if dup != nil {
			return ConflictError(fmt.Sprintf("schedule for %s already exists", scheduling.FormatDate(date)))
		}
		row := &types.Schedule{
			ID:      in.ScheduleID,
			OwnerID: owner.ID,
			Date:    date,
			Start:   start,
			End:     end,
		}
		if _, err := a.deps.Schedules.Create(dbc, []*types.Schedule{row}); err != nil {
			return err
		}
		out = scheduleResult(row)
		return nil
	})
	if err != nil {
		return domainagg.ScheduleResult{}, err
	}
	return out, nil
}

// UpdateSchedule rewrites the day and window. Shifts already placed are left
// untouched; the window only constrains later placements.
func (a *scheduleAggregate) UpdateSchedule(ctx context.Context, in domainagg.ScheduleInput) (domainagg.ScheduleResult, error) {
	const op = "Scheduling.Schedule.Update"
	var out domainagg.ScheduleResult
	if in.ScheduleID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing schedule_id", nil)
	}
	if err := a.validateInput(op, in); err != nil {
		return out, err
	}

	date := scheduling.NormalizeDate(in.Date)
	start := scheduling.NormalizeInstant(in.Start)
	end := scheduling.NormalizeInstant(in.End)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Schedules.LockByID(dbc, in.ScheduleID)
		if err != nil {
			return err
		}
		if row == nil || !OwnedBy(row.OwnerID, in.OwnerID) {
			return NotFoundError(op, "schedule")
		}
		if err := scheduling.ValidateScheduleWindow(op, date, start, end); err != nil {
			return err
		}
		dup, err := a.deps.Schedules.GetByOwnerDate(dbc, row.OwnerID, date)
		if err != nil {
			return err
		}
		if dup != nil && dup.ID != row.ID {
			return ConflictError(fmt.Sprintf("schedule for %s already exists", scheduling.FormatDate(date)))
		}
		if err := a.deps.Schedules.UpdateWindow(dbc, row.ID, date, start, end); err != nil {
			return err
		}
		row.Date, row.Start, row.End = date, start, end
		out = scheduleResult(row)
		return nil
	})
	if err != nil {
		return domainagg.ScheduleResult{}, err
	}
	return out, nil
}

func (a *scheduleAggregate) DeleteSchedule(ctx context.Context, in domainagg.DeleteScheduleInput) (domainagg.DeleteScheduleResult, error) {
	const op = "Scheduling.Schedule.Delete"
	var out domainagg.DeleteScheduleResult
	if in.ScheduleID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing schedule_id", nil)
	}
	if a.deps.Schedules == nil || a.deps.Shifts == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "schedule aggregate repos not configured", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Schedules.LockByID(dbc, in.ScheduleID)
		if err != nil {
			return err
		}
		if row == nil || !OwnedBy(row.OwnerID, in.OwnerID) {
			return NotFoundError(op, "schedule")
		}
		removed, err := a.deps.Shifts.DeleteBySchedules(dbc, []uuid.UUID{row.ID})
		if err != nil {
			return err
		}
		n, err := a.deps.Schedules.DeleteByID(dbc, row.ID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, fmt.Sprintf("schedule %s removed concurrently", row.ID)); err != nil {
			return err
		}
		out = domainagg.DeleteScheduleResult{ScheduleID: row.ID, ShiftsRemoved: removed}
		return nil
	})
	if err != nil {
		return domainagg.DeleteScheduleResult{}, err
	}
	return out, nil
}

func (a *scheduleAggregate) validateInput(op string, in domainagg.ScheduleInput) error {
	if in.Date.IsZero() || in.Start.IsZero() || in.End.IsZero() {
		return domainagg.NewError(domainagg.CodeValidation, op, "date, start and end are required", nil)
	}
	if a.deps.Owners == nil || a.deps.Schedules == nil || a.deps.Shifts == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "schedule aggregate repos not configured", nil)
	}
	return nil
}

func scheduleResult(row *types.Schedule) domainagg.ScheduleResult {
	return domainagg.ScheduleResult{
		ScheduleID: row.ID,
		OwnerID:    row.OwnerID,
		Date:       time.Time(row.Date),
		Start:      row.Start,
		End:        row.End,
	}
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type ScheduleWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

type ShiftInput struct {
	ScheduleID uuid.UUID
	EmployeeID uuid.UUID
	TaskID     *uuid.UUID
	ShiftDate  time.Time
	StartTime  time.Time
	EndTime    time.Time
}

// SchedulingService exposes schedules and shifts scoped to one owner.
type SchedulingService interface {
	CreateSchedule(ctx context.Context, ownerID uuid.UUID, in ScheduleWindow) (*types.Schedule, error)
	UpdateSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID, in ScheduleWindow) (*types.Schedule, error)
	DeleteSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) (domainagg.DeleteScheduleResult, error)
	GetSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) (*types.Schedule, error)
	ListSchedules(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*types.Schedule, error)

	CreateShift(ctx context.Context, ownerID uuid.UUID, in ShiftInput) (*types.Shift, error)
	UpdateShift(ctx context.Context, ownerID, shiftID uuid.UUID, in ShiftInput) (*types.Shift, error)
	DeleteShift(ctx context.Context, ownerID, shiftID uuid.UUID) error
	ListShiftsBySchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) ([]*types.Shift, error)
	ListShiftsForEmployeeDay(ctx context.Context, ownerID, employeeID uuid.UUID, day time.Time) ([]*types.Shift, error)
}

type schedulingService struct {
	log         *logger.Logger
	scheduleAgg domainagg.ScheduleAggregate
	shiftAgg    domainagg.ShiftAggregate
	schedules   repos.ScheduleRepo
	shifts      repos.ShiftRepo
	employees   repos.EmployeeRepo
}

func NewSchedulingService(
	log *logger.Logger,
	scheduleAgg domainagg.ScheduleAggregate,
	shiftAgg domainagg.ShiftAggregate,
	schedules repos.ScheduleRepo,
	shifts repos.ShiftRepo,
	employees repos.EmployeeRepo,
) SchedulingService {
	return &schedulingService{
		log:         log.With("service", "SchedulingService"),
		scheduleAgg: scheduleAgg,
		shiftAgg:    shiftAgg,
		schedules:   schedules,
		shifts:      shifts,
		employees:   employees,
	}
}

func (s *schedulingService) CreateSchedule(ctx context.Context, ownerID uuid.UUID, in ScheduleWindow) (*types.Schedule, error) {
	res, err := s.scheduleAgg.CreateSchedule(ctx, domainagg.ScheduleInput{
		OwnerID: ownerID,
		Date:    in.Date,
		Start:   in.Start,
		End:     in.End,
	})
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Scheduling.Schedule.Create", "schedule", res.ScheduleID, s.schedules.GetByID)
}

func (s *schedulingService) UpdateSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID, in ScheduleWindow) (*types.Schedule, error) {
	res, err := s.scheduleAgg.UpdateSchedule(ctx, domainagg.ScheduleInput{
		ScheduleID: scheduleID,
		OwnerID:    ownerID,
		Date:       in.Date,
		Start:      in.Start,
		End:        in.End,
	})
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Scheduling.Schedule.Update", "schedule", res.ScheduleID, s.schedules.GetByID)
}

func (s *schedulingService) DeleteSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) (domainagg.DeleteScheduleResult, error) {
	return s.scheduleAgg.DeleteSchedule(ctx, domainagg.DeleteScheduleInput{OwnerID: ownerID, ScheduleID: scheduleID})
}

func (s *schedulingService) GetSchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) (*types.Schedule, error) {
	const op = "Scheduling.Schedule.Get"
	row, err := s.schedules.GetByID(dbctx.Context{Ctx: ctx}, scheduleID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil || !aggregates.OwnedBy(row.OwnerID, ownerID) {
		return nil, aggregates.NotFoundError(op, "schedule")
	}
	return row, nil
}

func (s *schedulingService) ListSchedules(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*types.Schedule, error) {
	var fromDate, toDate *datatypes.Date
	if from != nil && !from.IsZero() {
		d := scheduling.NormalizeDate(*from)
		fromDate = &d
	}
	if to != nil && !to.IsZero() {
		d := scheduling.NormalizeDate(*to)
		toDate = &d
	}
	rows, err := s.schedules.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID, fromDate, toDate)
	if err != nil {
		return nil, aggregates.MapError("Scheduling.Schedule.List", err)
	}
	return rows, nil
}

func (s *schedulingService) CreateShift(ctx context.Context, ownerID uuid.UUID, in ShiftInput) (*types.Shift, error) {
	res, err := s.shiftAgg.CreateShift(ctx, placeShiftInput(ownerID, uuid.Nil, in))
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Scheduling.Shift.Create", "shift", res.ShiftID, s.shifts.GetByID)
}

func (s *schedulingService) UpdateShift(ctx context.Context, ownerID, shiftID uuid.UUID, in ShiftInput) (*types.Shift, error) {
	res, err := s.shiftAgg.UpdateShift(ctx, placeShiftInput(ownerID, shiftID, in))
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Scheduling.Shift.Update", "shift", res.ShiftID, s.shifts.GetByID)
}

func (s *schedulingService) DeleteShift(ctx context.Context, ownerID, shiftID uuid.UUID) error {
	return s.shiftAgg.DeleteShift(ctx, domainagg.DeleteShiftInput{OwnerID: ownerID, ShiftID: shiftID})
}

func (s *schedulingService) ListShiftsBySchedule(ctx context.Context, ownerID, scheduleID uuid.UUID) ([]*types.Shift, error) {
	if _, err := s.GetSchedule(ctx, ownerID, scheduleID); err != nil {
		return nil, err
	}
	rows, err := s.shifts.ListBySchedule(dbctx.Context{Ctx: ctx}, scheduleID)
	if err != nil {
		return nil, aggregates.MapError("Scheduling.Shift.List", err)
	}
	return rows, nil
}

func (s *schedulingService) ListShiftsForEmployeeDay(ctx context.Context, ownerID, employeeID uuid.UUID, day time.Time) ([]*types.Shift, error) {
	const op = "Scheduling.Shift.ListForEmployeeDay"
	dbc := dbctx.Context{Ctx: ctx}
	emp, err := s.employees.GetByID(dbc, employeeID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if emp == nil || (ownerID != uuid.Nil && !emp.BelongsTo(ownerID)) {
		return nil, aggregates.NotFoundError(op, "employee")
	}
	rows, err := s.shifts.ListForEmployeeDay(dbc, emp.ID, scheduling.NormalizeDate(day))
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return rows, nil
}

func placeShiftInput(ownerID, shiftID uuid.UUID, in ShiftInput) domainagg.PlaceShiftInput {
	return domainagg.PlaceShiftInput{
		OwnerID:    ownerID,
		ShiftID:    shiftID,
		ScheduleID: in.ScheduleID,
		EmployeeID: in.EmployeeID,
		TaskID:     in.TaskID,
		ShiftDate:  in.ShiftDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
	}
}

package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ShiftAggregateBoundary = Boundary{
	Name:   "Scheduling.ShiftAggregate",
	Writes: []string{"shift"},
	Locks:  LockEmployeeDay,
	Notes:  "Placement rules are checked against sibling shifts of the employee/day inside the write transaction.",
}

// ShiftAggregate owns shift placement invariants.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeInvalidTimeRange, CodeShiftOverlap, CodeOwnerMismatch,
// CodeOutOfScheduleWindow, CodeDateMismatch, CodeRetryable, CodeInternal.
type ShiftAggregate interface {
	Aggregate

	CreateShift(ctx context.Context, in PlaceShiftInput) (PlaceShiftResult, error)
	UpdateShift(ctx context.Context, in PlaceShiftInput) (PlaceShiftResult, error)
	DeleteShift(ctx context.Context, in DeleteShiftInput) error
}

// PlaceShiftInput is a candidate shift. ShiftID is required for updates and
// ignored (or used as the new ID when set) for creates.
type PlaceShiftInput struct {
	// OwnerID, when set, scopes the write to schedules of that owner.
	OwnerID    uuid.UUID
	ShiftID    uuid.UUID
	ScheduleID uuid.UUID
	EmployeeID uuid.UUID
	TaskID     *uuid.UUID
	ShiftDate  time.Time
	StartTime  time.Time
	EndTime    time.Time
}

type PlaceShiftResult struct {
	ShiftID    uuid.UUID
	ScheduleID uuid.UUID
	EmployeeID uuid.UUID
	TaskID     *uuid.UUID
	ShiftDate  time.Time
	StartTime  time.Time
	EndTime    time.Time
	Created    bool
}

type DeleteShiftInput struct {
	OwnerID uuid.UUID
	ShiftID uuid.UUID
}

package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ScheduleAggregateBoundary = Boundary{
	Name:   "Scheduling.ScheduleAggregate",
	Writes: []string{"schedule", "shift"},
	Locks:  LockOwnerRow,
	Notes:  "One schedule per owner and day; deleting a schedule removes its shifts.",
}

// ScheduleAggregate owns schedule window invariants.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeDateMismatch, CodeInvalidTimeRange, CodeInternal.
type ScheduleAggregate interface {
	Aggregate

	CreateSchedule(ctx context.Context, in ScheduleInput) (ScheduleResult, error)
	UpdateSchedule(ctx context.Context, in ScheduleInput) (ScheduleResult, error)
	DeleteSchedule(ctx context.Context, in DeleteScheduleInput) (DeleteScheduleResult, error)
}

type ScheduleInput struct {
	ScheduleID uuid.UUID
	OwnerID    uuid.UUID
	Date       time.Time
	Start      time.Time
	End        time.Time
}

type ScheduleResult struct {
	ScheduleID uuid.UUID
	OwnerID    uuid.UUID
	Date       time.Time
	Start      time.Time
	End        time.Time
}

type DeleteScheduleInput struct {
	OwnerID    uuid.UUID
	ScheduleID uuid.UUID
}

type DeleteScheduleResult struct {
	ScheduleID    uuid.UUID
	ShiftsRemoved int64
}

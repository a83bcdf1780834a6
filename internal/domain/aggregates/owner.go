package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var OwnerAggregateBoundary = Boundary{
	Name:   "Roster.OwnerAggregate",
	Writes: []string{"owner", "employee", "contract", "task", "schedule", "shift"},
	Locks:  LockOwnerRow,
	Notes:  "Guards owner/employee/superuser role exclusivity and runs the owner deletion cascade.",
}

// OwnerAggregate owns the ownership registry.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRoleConflict, CodeInternal.
type OwnerAggregate interface {
	Aggregate

	CreateOwner(ctx context.Context, in CreateOwnerInput) (CreateOwnerResult, error)
	DeleteOwner(ctx context.Context, in DeleteOwnerInput) (DeleteOwnerResult, error)
}

type CreateOwnerInput struct {
	AccountID uuid.UUID
}

type CreateOwnerResult struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

type DeleteOwnerInput struct {
	OwnerID uuid.UUID
}

type DeleteOwnerResult struct {
	OwnerID           uuid.UUID
	ContractsRemoved  int64
	TasksRemoved      int64
	SchedulesRemoved  int64
	ShiftsRemoved     int64
	EmployeesDetached int64
}

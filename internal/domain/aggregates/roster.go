package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var RosterAggregateBoundary = Boundary{
	Name:   "Roster.RosterAggregate",
	Writes: []string{"contract", "task", "employee", "shift"},
	Locks:  LockEmployeeRow,
	Notes:  "Contract deletion detaches employees instead of removing them.",
}

// RosterAggregate owns the per-owner catalogs and the employee roster.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRoleConflict, CodeOwnerMismatch,
// CodeInvalidTimeRange, CodeInternal.
type RosterAggregate interface {
	Aggregate

	CreateContract(ctx context.Context, in CreateContractInput) (ContractResult, error)
	DeleteContract(ctx context.Context, in DeleteRosterItemInput) (DeleteContractResult, error)

	CreateTask(ctx context.Context, in CreateTaskInput) (TaskResult, error)
	DeleteTask(ctx context.Context, in DeleteRosterItemInput) error

	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (EmployeeResult, error)
	DeleteEmployee(ctx context.Context, in DeleteRosterItemInput) (DeleteEmployeeResult, error)
}

type CreateContractInput struct {
	OwnerID   uuid.UUID
	WeekHours int
}

type ContractResult struct {
	ContractID uuid.UUID
	OwnerID    uuid.UUID
	WeekHours  int
}

// DeleteRosterItemInput addresses a row scoped to its owner.
type DeleteRosterItemInput struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

type DeleteContractResult struct {
	ContractID        uuid.UUID
	EmployeesDetached int64
}

type CreateTaskInput struct {
	OwnerID uuid.UUID
	Name    string
}

type TaskResult struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

type CreateEmployeeInput struct {
	AccountID  uuid.UUID
	OwnerID    *uuid.UUID
	ContractID *uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
}

type EmployeeResult struct {
	EmployeeID uuid.UUID
	AccountID  uuid.UUID
	OwnerID    *uuid.UUID
	ContractID *uuid.UUID
}

type DeleteEmployeeResult struct {
	EmployeeID    uuid.UUID
	ShiftsRemoved int64
}

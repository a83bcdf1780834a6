package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type CreateEmployeeInput struct {
	AccountID  uuid.UUID
	OwnerID    *uuid.UUID
	ContractID *uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
}

// RosterService exposes the ownership registry and the per-owner catalogs.
// Writes go through the owner/roster aggregates; lists read the table repos.
type RosterService interface {
	CreateOwner(ctx context.Context, accountID uuid.UUID) (*types.Owner, error)
	DeleteOwner(ctx context.Context, ownerID uuid.UUID) (domainagg.DeleteOwnerResult, error)
	ListOwners(ctx context.Context) ([]*types.Owner, error)
	OwnerForAccount(ctx context.Context, accountID uuid.UUID) (*types.Owner, error)

	CreateContract(ctx context.Context, ownerID uuid.UUID, weekHours int) (*types.Contract, error)
	DeleteContract(ctx context.Context, ownerID, contractID uuid.UUID) (domainagg.DeleteContractResult, error)
	ListContracts(ctx context.Context, ownerID uuid.UUID) ([]*types.Contract, error)

	CreateTask(ctx context.Context, ownerID uuid.UUID, name string) (*types.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*types.Task, error)

	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*types.Employee, error)
	DeleteEmployee(ctx context.Context, ownerID, employeeID uuid.UUID) (domainagg.DeleteEmployeeResult, error)
	ListEmployees(ctx context.Context, ownerID uuid.UUID) ([]*types.Employee, error)
}

type rosterService struct {
	log       *logger.Logger
	ownerAgg  domainagg.OwnerAggregate
	rosterAgg domainagg.RosterAggregate
	owners    repos.OwnerRepo
	contracts repos.ContractRepo
	tasks     repos.TaskRepo
	employees repos.EmployeeRepo
}

func NewRosterService(
	log *logger.Logger,
	ownerAgg domainagg.OwnerAggregate,
	rosterAgg domainagg.RosterAggregate,
	owners repos.OwnerRepo,
	contracts repos.ContractRepo,
	tasks repos.TaskRepo,
	employees repos.EmployeeRepo,
) RosterService {
	return &rosterService{
		log:       log.With("service", "RosterService"),
		ownerAgg:  ownerAgg,
		rosterAgg: rosterAgg,
		owners:    owners,
		contracts: contracts,
		tasks:     tasks,
		employees: employees,
	}
}

func (s *rosterService) CreateOwner(ctx context.Context, accountID uuid.UUID) (*types.Owner, error) {
	res, err := s.ownerAgg.CreateOwner(ctx, domainagg.CreateOwnerInput{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	s.log.Info("Owner created", "owner_id", res.OwnerID, "account_id", res.AccountID)
	return loadCreated(ctx, "Roster.Owner.Create", "owner", res.OwnerID, s.owners.GetByID)
}

func (s *rosterService) DeleteOwner(ctx context.Context, ownerID uuid.UUID) (domainagg.DeleteOwnerResult, error) {
	res, err := s.ownerAgg.DeleteOwner(ctx, domainagg.DeleteOwnerInput{OwnerID: ownerID})
	if err != nil {
		return res, err
	}
	s.log.Info("Owner deleted",
		"owner_id", res.OwnerID,
		"schedules_removed", res.SchedulesRemoved,
		"shifts_removed", res.ShiftsRemoved,
		"employees_detached", res.EmployeesDetached,
	)
	return res, nil
}

func (s *rosterService) ListOwners(ctx context.Context) ([]*types.Owner, error) {
	rows, err := s.owners.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, aggregates.MapError("Roster.Owner.List", err)
	}
	return rows, nil
}

func (s *rosterService) OwnerForAccount(ctx context.Context, accountID uuid.UUID) (*types.Owner, error) {
	row, err := s.owners.GetByAccountID(dbctx.Context{Ctx: ctx}, accountID)
	if err != nil {
		return nil, aggregates.MapError("Roster.Owner.Resolve", err)
	}
	return row, nil
}

// ---------------- contracts ----------------

func (s *rosterService) CreateContract(ctx context.Context, ownerID uuid.UUID, weekHours int) (*types.Contract, error) {
	res, err := s.rosterAgg.CreateContract(ctx, domainagg.CreateContractInput{OwnerID: ownerID, WeekHours: weekHours})
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Roster.Contract.Create", "contract", res.ContractID, s.contracts.GetByID)
}

func (s *rosterService) DeleteContract(ctx context.Context, ownerID, contractID uuid.UUID) (domainagg.DeleteContractResult, error) {
	return s.rosterAgg.DeleteContract(ctx, domainagg.DeleteRosterItemInput{OwnerID: ownerID, ID: contractID})
}

func (s *rosterService) ListContracts(ctx context.Context, ownerID uuid.UUID) ([]*types.Contract, error) {
	rows, err := s.contracts.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, aggregates.MapError("Roster.Contract.List", err)
	}
	return rows, nil
}

// ---------------- tasks ----------------

func (s *rosterService) CreateTask(ctx context.Context, ownerID uuid.UUID, name string) (*types.Task, error) {
	res, err := s.rosterAgg.CreateTask(ctx, domainagg.CreateTaskInput{OwnerID: ownerID, Name: name})
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Roster.Task.Create", "task", res.TaskID, s.tasks.GetByID)
}

func (s *rosterService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return s.rosterAgg.DeleteTask(ctx, domainagg.DeleteRosterItemInput{OwnerID: ownerID, ID: taskID})
}

func (s *rosterService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*types.Task, error) {
	rows, err := s.tasks.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, aggregates.MapError("Roster.Task.List", err)
	}
	return rows, nil
}

// ---------------- employees ----------------

func (s *rosterService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*types.Employee, error) {
	res, err := s.rosterAgg.CreateEmployee(ctx, domainagg.CreateEmployeeInput{
		AccountID:  in.AccountID,
		OwnerID:    in.OwnerID,
		ContractID: in.ContractID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return loadCreated(ctx, "Roster.Employee.Create", "employee", res.EmployeeID, s.employees.GetByID)
}

func (s *rosterService) DeleteEmployee(ctx context.Context, ownerID, employeeID uuid.UUID) (domainagg.DeleteEmployeeResult, error) {
	return s.rosterAgg.DeleteEmployee(ctx, domainagg.DeleteRosterItemInput{OwnerID: ownerID, ID: employeeID})
}

func (s *rosterService) ListEmployees(ctx context.Context, ownerID uuid.UUID) ([]*types.Employee, error) {
	rows, err := s.employees.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, aggregates.MapError("Roster.Employee.List", err)
	}
	return rows, nil
}

// loadCreated re-reads a row right after its aggregate committed it.
func loadCreated[T any](ctx context.Context, op, what string, id uuid.UUID, get func(dbctx.Context, uuid.UUID) (*T, error)) (*T, error) {
	row, err := get(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, aggregates.NotFoundError(op, what)
	}
	return row, nil
}

package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type Repos struct {
	Account repos.AccountRepo

	Owner    repos.OwnerRepo
	Contract repos.ContractRepo
	Task     repos.TaskRepo
	Employee repos.EmployeeRepo

	Schedule repos.ScheduleRepo
	Shift    repos.ShiftRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:  repos.NewAccountRepo(db, log),
		Owner:    repos.NewOwnerRepo(db, log),
		Contract: repos.NewContractRepo(db, log),
		Task:     repos.NewTaskRepo(db, log),
		Employee: repos.NewEmployeeRepo(db, log),
		Schedule: repos.NewScheduleRepo(db, log),
		Shift:    repos.NewShiftRepo(db, log),
	}
}

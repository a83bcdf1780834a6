package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/repos/account"
	"github.com/yungbote/shiftplan-backend/internal/data/repos/roster"
	"github.com/yungbote/shiftplan-backend/internal/data/repos/scheduling"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type AccountRepo = account.AccountRepo

type OwnerRepo = roster.OwnerRepo
type ContractRepo = roster.ContractRepo
type TaskRepo = roster.TaskRepo
type EmployeeRepo = roster.EmployeeRepo

type ScheduleRepo = scheduling.ScheduleRepo
type ShiftRepo = scheduling.ShiftRepo

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return account.NewAccountRepo(db, baseLog)
}

func NewOwnerRepo(db *gorm.DB, baseLog *logger.Logger) OwnerRepo {
	return roster.NewOwnerRepo(db, baseLog)
}
func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return roster.NewContractRepo(db, baseLog)
}
func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo { return roster.NewTaskRepo(db, baseLog) }
func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return roster.NewEmployeeRepo(db, baseLog)
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return scheduling.NewScheduleRepo(db, baseLog)
}
func NewShiftRepo(db *gorm.DB, baseLog *logger.Logger) ShiftRepo {
	return scheduling.NewShiftRepo(db, baseLog)
}

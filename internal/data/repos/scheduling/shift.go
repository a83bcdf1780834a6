package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type ShiftRepo interface {
	Create(dbc dbctx.Context, rows []*types.Shift) ([]*types.Shift, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Shift, error)
	ListBySchedule(dbc dbctx.Context, scheduleID uuid.UUID) ([]*types.Shift, error)
	ListForEmployeeDay(dbc dbctx.Context, employeeID uuid.UUID, day datatypes.Date) ([]*types.Shift, error)
	// FindOverlapping returns the employee's shifts on day that intersect the
	// open interval (start, end), skipping excludeID.
	FindOverlapping(dbc dbctx.Context, employeeID uuid.UUID, day datatypes.Date, start, end time.Time, excludeID uuid.UUID) ([]*types.Shift, error)
	Update(dbc dbctx.Context, row *types.Shift) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteBySchedules(dbc dbctx.Context, scheduleIDs []uuid.UUID) (int64, error)
	DeleteByEmployee(dbc dbctx.Context, employeeID uuid.UUID) (int64, error)
	ClearTasks(dbc dbctx.Context, taskIDs []uuid.UUID) (int64, error)
}

type shiftRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShiftRepo(db *gorm.DB, baseLog *logger.Logger) ShiftRepo {
	return &shiftRepo{db: db, log: baseLog.With("repo", "ShiftRepo")}
}

func (r *shiftRepo) Create(dbc dbctx.Context, rows []*types.Shift) ([]*types.Shift, error) {
	if len(rows) == 0 {
		return []*types.Shift{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *shiftRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Shift, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Shift
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *shiftRepo) ListBySchedule(dbc dbctx.Context, scheduleID uuid.UUID) ([]*types.Shift, error) {
	var out []*types.Shift
	if scheduleID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("schedule_id = ?", scheduleID).
		Order("start_time ASC, employee_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *shiftRepo) ListForEmployeeDay(dbc dbctx.Context, employeeID uuid.UUID, day datatypes.Date) ([]*types.Shift, error) {
	var out []*types.Shift
	if employeeID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("employee_id = ? AND shift_date = ?", employeeID, day).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *shiftRepo) FindOverlapping(dbc dbctx.Context, employeeID uuid.UUID, day datatypes.Date, start, end time.Time, excludeID uuid.UUID) ([]*types.Shift, error) {
	var out []*types.Shift
	if employeeID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("employee_id = ? AND shift_date = ?", employeeID, day).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *shiftRepo) Update(dbc dbctx.Context, row *types.Shift) error {
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.Shift{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"schedule_id": row.ScheduleID,
			"employee_id": row.EmployeeID,
			"task_id":     row.TaskID,
			"shift_date":  row.ShiftDate,
			"start_time":  row.StartTime,
			"end_time":    row.EndTime,
		}).Error
}

func (r *shiftRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Shift{})
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) DeleteBySchedules(dbc dbctx.Context, scheduleIDs []uuid.UUID) (int64, error) {
	if len(scheduleIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("schedule_id IN ?", scheduleIDs).Delete(&types.Shift{})
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) DeleteByEmployee(dbc dbctx.Context, employeeID uuid.UUID) (int64, error) {
	if employeeID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("employee_id = ?", employeeID).Delete(&types.Shift{})
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) ClearTasks(dbc dbctx.Context, taskIDs []uuid.UUID) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Shift{}).
		Where("task_id IN ?", taskIDs).
		Update("task_id", nil)
	return res.RowsAffected, res.Error
}

package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type ScheduleRepo interface {
	Create(dbc dbctx.Context, rows []*types.Schedule) ([]*types.Schedule, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Schedule, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Schedule, error)
	GetByOwnerDate(dbc dbctx.Context, ownerID uuid.UUID, date datatypes.Date) (*types.Schedule, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, from, to *datatypes.Date) ([]*types.Schedule, error)
	IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	UpdateWindow(dbc dbctx.Context, id uuid.UUID, date datatypes.Date, start, end time.Time) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error)
}

type scheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return &scheduleRepo{db: db, log: baseLog.With("repo", "ScheduleRepo")}
}

func (r *scheduleRepo) Create(dbc dbctx.Context, rows []*types.Schedule) ([]*types.Schedule, error) {
	if len(rows) == 0 {
		return []*types.Schedule{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scheduleRepo) first(q *gorm.DB) (*types.Schedule, error) {
	var row types.Schedule
	if err := q.Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *scheduleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Schedule, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("id = ?", id))
}

func (r *scheduleRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Schedule, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *scheduleRepo) GetByOwnerDate(dbc dbctx.Context, ownerID uuid.UUID, date datatypes.Date) (*types.Schedule, error) {
	if ownerID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("owner_id = ? AND date = ?", ownerID, date))
}

func (r *scheduleRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, from, to *datatypes.Date) ([]*types.Schedule, error) {
	var out []*types.Schedule
	if ownerID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).Where("owner_id = ?", ownerID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *scheduleRepo) IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if ownerID == uuid.Nil {
		return ids, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Schedule{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *scheduleRepo) UpdateWindow(dbc dbctx.Context, id uuid.UUID, date datatypes.Date, start, end time.Time) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.Schedule{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"date":       date,
			"start_time": start,
			"end_time":   end,
		}).Error
}

func (r *scheduleRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Schedule{})
	return res.RowsAffected, res.Error
}

func (r *scheduleRepo) DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("owner_id = ?", ownerID).Delete(&types.Schedule{})
	return res.RowsAffected, res.Error
}

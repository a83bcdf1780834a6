package roster

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type TaskRepo interface {
	Create(dbc dbctx.Context, rows []*types.Task) ([]*types.Task, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Task, error)
	GetByOwnerName(dbc dbctx.Context, ownerID uuid.UUID, name string) (*types.Task, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Task, error)
	IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) Create(dbc dbctx.Context, rows []*types.Task) ([]*types.Task, error) {
	if len(rows) == 0 {
		return []*types.Task{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Task, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Task
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *taskRepo) GetByOwnerName(dbc dbctx.Context, ownerID uuid.UUID, name string) (*types.Task, error) {
	name = strings.TrimSpace(name)
	if ownerID == uuid.Nil || name == "" {
		return nil, nil
	}
	var row types.Task
	if err := dbc.DB(r.db).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *taskRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Task, error) {
	var out []*types.Task
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if ownerID == uuid.Nil {
		return ids, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Task{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *taskRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Task{})
	return res.RowsAffected, res.Error
}

func (r *taskRepo) DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("owner_id = ?", ownerID).Delete(&types.Task{})
	return res.RowsAffected, res.Error
}

package roster

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, rows []*types.Contract) ([]*types.Contract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contract, error)
	GetByOwnerHours(dbc dbctx.Context, ownerID uuid.UUID, weekHours int) (*types.Contract, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Contract, error)
	IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: baseLog.With("repo", "ContractRepo")}
}

func (r *contractRepo) Create(dbc dbctx.Context, rows []*types.Contract) ([]*types.Contract, error) {
	if len(rows) == 0 {
		return []*types.Contract{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contract, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Contract
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) GetByOwnerHours(dbc dbctx.Context, ownerID uuid.UUID, weekHours int) (*types.Contract, error) {
	var row types.Contract
	if err := dbc.DB(r.db).
		Where("owner_id = ? AND week_hours = ?", ownerID, weekHours).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Contract, error) {
	var out []*types.Contract
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("owner_id = ?", ownerID).
		Order("week_hours ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contractRepo) IDsByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if ownerID == uuid.Nil {
		return ids, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Contract{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *contractRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Contract{})
	return res.RowsAffected, res.Error
}

func (r *contractRepo) DeleteByOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("owner_id = ?", ownerID).Delete(&types.Contract{})
	return res.RowsAffected, res.Error
}

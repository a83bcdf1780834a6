package roster

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type OwnerRepo interface {
	Create(dbc dbctx.Context, rows []*types.Owner) ([]*types.Owner, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error)
	GetByAccountID(dbc dbctx.Context, accountID uuid.UUID) (*types.Owner, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error)
	List(dbc dbctx.Context) ([]*types.Owner, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type ownerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOwnerRepo(db *gorm.DB, baseLog *logger.Logger) OwnerRepo {
	return &ownerRepo{db: db, log: baseLog.With("repo", "OwnerRepo")}
}

func (r *ownerRepo) Create(dbc dbctx.Context, rows []*types.Owner) ([]*types.Owner, error) {
	if len(rows) == 0 {
		return []*types.Owner{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ownerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Owner
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *ownerRepo) GetByAccountID(dbc dbctx.Context, accountID uuid.UUID) (*types.Owner, error) {
	if accountID == uuid.Nil {
		return nil, nil
	}
	var row types.Owner
	if err := dbc.DB(r.db).Where("account_id = ?", accountID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *ownerRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Owner
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *ownerRepo) List(dbc dbctx.Context) ([]*types.Owner, error) {
	var out []*types.Owner
	if err := dbc.DB(r.db).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ownerRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Owner{})
	return res.RowsAffected, res.Error
}

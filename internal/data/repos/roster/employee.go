package roster

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type EmployeeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Employee) ([]*types.Employee, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error)
	GetByAccountID(dbc dbctx.Context, accountID uuid.UUID) (*types.Employee, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Employee, error)
	DetachOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error)
	DetachContracts(dbc dbctx.Context, contractIDs []uuid.UUID) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return &employeeRepo{db: db, log: baseLog.With("repo", "EmployeeRepo")}
}

func (r *employeeRepo) Create(dbc dbctx.Context, rows []*types.Employee) ([]*types.Employee, error) {
	if len(rows) == 0 {
		return []*types.Employee{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *employeeRepo) first(q *gorm.DB) (*types.Employee, error) {
	var row types.Employee
	if err := q.Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *employeeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("id = ?", id))
}

func (r *employeeRepo) GetByAccountID(dbc dbctx.Context, accountID uuid.UUID) (*types.Employee, error) {
	if accountID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("account_id = ?", accountID))
}

// LockByID serializes shift placement per employee for the rest of the transaction.
func (r *employeeRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *employeeRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Employee, error) {
	var out []*types.Employee
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("owner_id = ?", ownerID).
		Order("start_date ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) DetachOwner(dbc dbctx.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Employee{}).
		Where("owner_id = ?", ownerID).
		Update("owner_id", nil)
	return res.RowsAffected, res.Error
}

func (r *employeeRepo) DetachContracts(dbc dbctx.Context, contractIDs []uuid.UUID) (int64, error) {
	if len(contractIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Employee{}).
		Where("contract_id IN ?", contractIDs).
		Update("contract_id", nil)
	return res.RowsAffected, res.Error
}

func (r *employeeRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Employee{})
	return res.RowsAffected, res.Error
}

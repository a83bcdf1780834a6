package account

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type AccountRepo interface {
	Create(dbc dbctx.Context, rows []*types.Account) ([]*types.Account, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Account, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: baseLog.With("repo", "AccountRepo")}
}

func (r *accountRepo) Create(dbc dbctx.Context, rows []*types.Account) ([]*types.Account, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Account{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *accountRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Account
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// LockByID reads the account with a row lock held until the surrounding
// transaction ends. Role assignment serializes on it.
func (r *accountRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Account
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *accountRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Account, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	var row types.Account
	if err := t.WithContext(dbc.Ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *accountRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Employee is a scheduled worker. OwnerID and ContractID are nulled, not
// cascaded, when the referenced row goes away. Foreign keys are installed by
// the migration, not derived from association fields.
type Employee struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex;column:account_id" json:"account_id"`
	OwnerID    *uuid.UUID      `gorm:"type:uuid;index;column:owner_id" json:"owner_id,omitempty"`
	ContractID *uuid.UUID      `gorm:"type:uuid;index;column:contract_id" json:"contract_id,omitempty"`
	StartDate  datatypes.Date  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate    *datatypes.Date `gorm:"column:end_date" json:"end_date,omitempty"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string { return "employee" }

func (e *Employee) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BelongsTo reports whether the employee is currently linked to ownerID.
func (e *Employee) BelongsTo(ownerID uuid.UUID) bool {
	return e != nil && e.OwnerID != nil && *e.OwnerID == ownerID && ownerID != uuid.Nil
}

package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner marks an account as able to manage a roster.
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:account_id" json:"account_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Owner) TableName() string { return "owner" }

func (o *Owner) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

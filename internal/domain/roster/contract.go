package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinWeekHours = 1
	MaxWeekHours = 40
)

// Contract is a weekly-hours category offered by one owner.
type Contract struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contract_owner_hours,priority:1;column:owner_id" json:"owner_id"`
	WeekHours int       `gorm:"not null;uniqueIndex:idx_contract_owner_hours,priority:2;column:week_hours" json:"week_hours"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Contract) TableName() string { return "contract" }

func (c *Contract) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ValidWeekHours reports whether h is inside [MinWeekHours, MaxWeekHours].
func ValidWeekHours(h int) bool {
	return h >= MinWeekHours && h <= MaxWeekHours
}

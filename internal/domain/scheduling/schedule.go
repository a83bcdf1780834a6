package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Schedule is an owner's working window for one calendar day.
type Schedule struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_owner_date,priority:1;column:owner_id" json:"owner_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_schedule_owner_date,priority:2;column:date" json:"date"`
	Start     time.Time      `gorm:"not null;column:start_time" json:"start"`
	End       time.Time      `gorm:"not null;column:end_time" json:"end"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Schedule) TableName() string { return "schedule" }

func (s *Schedule) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

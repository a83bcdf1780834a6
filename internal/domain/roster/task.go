package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_task_owner_name,priority:1;column:owner_id" json:"owner_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_task_owner_name,priority:2;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Task) TableName() string { return "task" }

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

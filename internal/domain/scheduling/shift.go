package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
)

// Shift is one employee's assignment inside a schedule.
type Shift struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ScheduleID uuid.UUID      `gorm:"type:uuid;not null;index;column:schedule_id" json:"schedule_id"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_shift_employee_day,priority:1;column:employee_id" json:"employee_id"`
	TaskID     *uuid.UUID     `gorm:"type:uuid;index;column:task_id" json:"task_id,omitempty"`
	ShiftDate  datatypes.Date `gorm:"not null;index:idx_shift_employee_day,priority:2;column:shift_date" json:"shift_date"`
	StartTime  time.Time      `gorm:"not null;column:start_time" json:"start_time"`
	EndTime    time.Time      `gorm:"not null;column:end_time" json:"end_time"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Shift) TableName() string { return "shift" }

func (s *Shift) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Ref is the compact form reported in overlap rejections.
func (s Shift) Ref() domainagg.ShiftRef {
	return domainagg.ShiftRef{
		ID:         s.ID,
		ScheduleID: s.ScheduleID,
		EmployeeID: s.EmployeeID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
	}
}

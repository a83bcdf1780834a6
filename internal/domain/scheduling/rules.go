package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
)

// Placement is a candidate shift together with the already-loaded rows it
// must agree with.
type Placement struct {
	// ShiftID is uuid.Nil for a new shift.
	ShiftID  uuid.UUID
	Schedule Schedule
	// EmployeeOwnerID is nil once the employee was detached from its owner.
	EmployeeOwnerID *uuid.UUID
	// TaskOwnerID is nil when the shift carries no task.
	TaskOwnerID *uuid.UUID
	ShiftDate   datatypes.Date
	StartTime   time.Time
	EndTime     time.Time
}

// ValidateShiftTimeRange rejects empty and inverted intervals.
func ValidateShiftTimeRange(op string, start, end time.Time) error {
	if !start.Before(end) {
		return domainagg.NewError(domainagg.CodeInvalidTimeRange, op,
			fmt.Sprintf("start_time %s must be before end_time %s", start.Format(time.RFC3339), end.Format(time.RFC3339)), nil)
	}
	return nil
}

// Overlaps uses open intervals: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindOverlaps returns the shifts in existing that conflict with [start, end),
// ignoring the shift identified by self.
func FindOverlaps(existing []Shift, self uuid.UUID, start, end time.Time) []Shift {
	var out []Shift
	for _, s := range existing {
		if self != uuid.Nil && s.ID == self {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			out = append(out, s)
		}
	}
	return out
}

// ValidateShiftPlacement runs every placement rule in order and returns the
// first rejection. siblings are the employee's shifts on the same day.
func ValidateShiftPlacement(op string, p Placement, siblings []Shift) error {
	if err := ValidateShiftTimeRange(op, p.StartTime, p.EndTime); err != nil {
		return err
	}

	if conflicts := FindOverlaps(siblings, p.ShiftID, p.StartTime, p.EndTime); len(conflicts) > 0 {
		refs := make([]domainagg.ShiftRef, 0, len(conflicts))
		for _, c := range conflicts {
			refs = append(refs, c.Ref())
		}
		return domainagg.NewError(domainagg.CodeShiftOverlap, op,
			fmt.Sprintf("shift overlaps %d existing shift(s) of the employee", len(refs)),
			&domainagg.OverlapError{Conflicts: refs})
	}

	sched := p.Schedule
	if p.EmployeeOwnerID == nil || *p.EmployeeOwnerID != sched.OwnerID {
		return domainagg.NewError(domainagg.CodeOwnerMismatch, op, "schedule and employee belong to different owners", nil)
	}
	if p.TaskOwnerID != nil && *p.TaskOwnerID != sched.OwnerID {
		return domainagg.NewError(domainagg.CodeOwnerMismatch, op, "task belongs to a different owner", nil)
	}

	if p.StartTime.Before(sched.Start) || p.StartTime.After(sched.End) {
		return domainagg.NewError(domainagg.CodeOutOfScheduleWindow, op,
			fmt.Sprintf("start_time %s outside schedule window [%s, %s]",
				p.StartTime.Format(time.RFC3339), sched.Start.Format(time.RFC3339), sched.End.Format(time.RFC3339)), nil)
	}
	if !p.EndTime.After(sched.Start) || p.EndTime.After(sched.End) {
		return domainagg.NewError(domainagg.CodeOutOfScheduleWindow, op,
			fmt.Sprintf("end_time %s outside schedule window (%s, %s]",
				p.EndTime.Format(time.RFC3339), sched.Start.Format(time.RFC3339), sched.End.Format(time.RFC3339)), nil)
	}

	if !SameDay(p.ShiftDate, sched.Date) {
		return domainagg.NewError(domainagg.CodeDateMismatch, op,
			fmt.Sprintf("shift_date %s differs from schedule date %s", FormatDate(p.ShiftDate), FormatDate(sched.Date)), nil)
	}
	return nil
}

// ValidateScheduleWindow checks that start falls on date and that end is
// after start. The calendar day of end is not checked.
func ValidateScheduleWindow(op string, date datatypes.Date, start, end time.Time) error {
	if !SameDay(DayOf(start), date) {
		return domainagg.NewError(domainagg.CodeDateMismatch, op,
			fmt.Sprintf("start %s does not fall on %s", start.Format(time.RFC3339), FormatDate(date)), nil)
	}
	if !end.After(start) {
		return domainagg.NewError(domainagg.CodeInvalidTimeRange, op,
			fmt.Sprintf("end %s must be after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)), nil)
	}
	return nil
}

package aggregates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrorCode standardizes aggregate failure semantics across domains.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"

	// Scheduling rule rejections.
	CodeInvalidTimeRange    ErrorCode = "invalid_time_range"
	CodeShiftOverlap        ErrorCode = "shift_overlap"
	CodeOwnerMismatch       ErrorCode = "owner_mismatch"
	CodeOutOfScheduleWindow ErrorCode = "out_of_schedule_window"
	CodeDateMismatch        ErrorCode = "date_mismatch"
	CodeRoleConflict        ErrorCode = "role_conflict"
)

// IsRuleRejection reports whether code is a deterministic business-rule rejection
// the caller should surface as a bad request.
func IsRuleRejection(code ErrorCode) bool {
	switch code {
	case CodeValidation,
		CodeInvariantViolation,
		CodeInvalidTimeRange,
		CodeShiftOverlap,
		CodeOwnerMismatch,
		CodeOutOfScheduleWindow,
		CodeDateMismatch,
		CodeRoleConflict:
		return true
	default:
		return false
	}
}

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// ShiftRef identifies an existing shift involved in a rejection.
type ShiftRef struct {
	ID         uuid.UUID `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// OverlapError is the cause attached to CodeShiftOverlap errors.
// Conflicts is empty when the overlap was detected by a storage constraint.
type OverlapError struct {
	Conflicts []ShiftRef
}

func (e *OverlapError) Error() string {
	if e == nil || len(e.Conflicts) == 0 {
		return "shift overlaps an existing shift"
	}
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s [%s, %s]", c.ID, c.StartTime.Format(time.RFC3339), c.EndTime.Format(time.RFC3339)))
	}
	return "shift overlaps existing shifts: " + strings.Join(parts, "; ")
}

// OverlapConflicts returns the conflicting shifts carried by a CodeShiftOverlap error.
func OverlapConflicts(err error) []ShiftRef {
	var ov *OverlapError
	if !errors.As(err, &ov) || ov == nil {
		return nil
	}
	return ov.Conflicts
}
